package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const entryKeyPrefix = "entry:"

// CacheObserver receives cache hit/miss notifications
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// CachedStore caches individual records in Redis as JSON under entry:<id>.
// Redis failures are logged and fall through to the wrapped store.
type CachedStore struct {
	next     EntryStore
	redis    *redis.Client
	ttl      time.Duration
	logger   *zap.SugaredLogger
	observer CacheObserver
}

// NewCachedStore wraps next with a Redis read-through cache
func NewCachedStore(next EntryStore, client *redis.Client, ttl time.Duration, logger *zap.SugaredLogger, observer CacheObserver) *CachedStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CachedStore{next: next, redis: client, ttl: ttl, logger: logger, observer: observer}
}

// Create persists the record and caches it
func (s *CachedStore) Create(ctx context.Context, rec Record) (Record, error) {
	created, err := s.next.Create(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	s.put(ctx, created)
	return created, nil
}

// Get serves from Redis when possible and populates it on a miss
func (s *CachedStore) Get(ctx context.Context, id string) (Record, error) {
	cached, err := s.redis.Get(ctx, entryKeyPrefix+id).Result()
	switch {
	case err == nil:
		var rec Record
		if err := json.Unmarshal([]byte(cached), &rec); err == nil {
			s.hit()
			return rec, nil
		}
		s.logger.Warnw("discarding malformed cached entry", "entry_id", id)
	case !errors.Is(err, redis.Nil):
		s.logger.Warnw("failed to read entry from cache", "entry_id", id, "error", err)
	}
	s.miss()

	rec, err := s.next.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	s.put(ctx, rec)
	return rec, nil
}

// List always reads through; pages are not cached
func (s *CachedStore) List(ctx context.Context, page Page) (PageResult, error) {
	return s.next.List(ctx, page)
}

func (s *CachedStore) put(ctx context.Context, rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Errorw("failed to marshal entry for cache", "entry_id", rec.ID, "error", err)
		return
	}
	if err := s.redis.Set(ctx, entryKeyPrefix+rec.ID, data, s.ttl).Err(); err != nil {
		s.logger.Warnw("failed to cache entry", "entry_id", rec.ID, "error", err)
	}
}

func (s *CachedStore) hit() {
	if s.observer != nil {
		s.observer.CacheHit()
	}
}

func (s *CachedStore) miss() {
	if s.observer != nil {
		s.observer.CacheMiss()
	}
}
