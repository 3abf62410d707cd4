package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process memory in insertion order
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	index   map[string]int
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
		now:   time.Now,
	}
}

// Create saves a record
func (s *MemoryStore) Create(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec = stamp(rec, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[rec.ID]; exists {
		return Record{}, fmt.Errorf("entry %s already exists", rec.ID)
	}
	s.index[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return rec, nil
}

// Get retrieves a record by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.index[id]
	if !exists {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[i], nil
}

// List returns a page of records in insertion order
func (s *MemoryStore) List(ctx context.Context, page Page) (PageResult, error) {
	page = page.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.records)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	out := make([]Record, end-start)
	copy(out, s.records[start:end])
	return PageResult{Records: out, Total: total}, nil
}
