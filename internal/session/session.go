package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"io.winapps.vybes/internal/journal"
	"io.winapps.vybes/internal/store"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
	ErrEmptyBody       = errors.New("entry body is empty")
)

// Session owns one EntryLog. All access to the log goes through the session
// lock, so the log itself never sees concurrent use.
type Session struct {
	ID string

	mu          sync.Mutex
	log         *journal.EntryLog
	presenter   journal.Presenter
	store       store.EntryStore
	observer    Observer
	now         func() time.Time
	rejectEmpty bool
	closed      bool
	version     uint64
	changedAt   time.Time
	unsubscribe func()

	lastUsed atomic.Int64
}

// Submission is the result of creating an entry
type Submission struct {
	Record store.Record
	// ScrollTargetIndex is nil when the entry was not appended to a session.
	ScrollTargetIndex *int
	Version           uint64
}

// Snapshot is a consistent read of a session's rows
type Snapshot struct {
	SessionID         string
	Version           uint64
	ChangedAt         time.Time
	RowCount          int
	Rows              []journal.Row
	ScrollTargetIndex *int
}

func newSession(id string, log *journal.EntryLog, st store.EntryStore, observer Observer, now func() time.Time, rejectEmpty bool) *Session {
	s := &Session{
		ID:          id,
		log:         log,
		store:       st,
		observer:    observer,
		now:         now,
		rejectEmpty: rejectEmpty,
		changedAt:   now(),
	}
	s.touch()
	s.unsubscribe = log.Subscribe(journal.ListenerFunc(s.entriesChanged))
	return s
}

// entriesChanged runs inside Append, with s.mu already held
func (s *Session) entriesChanged(*journal.EntryLog) {
	s.version++
	s.changedAt = s.now()
	s.observer.EntryAppended()
}

// entryTime is the creation time for a new entry, at the microsecond
// precision Postgres stores, so a reloaded log matches the live one.
func entryTime(now func() time.Time) time.Time {
	return now().Truncate(time.Microsecond)
}

func (s *Session) touch() {
	s.lastUsed.Store(s.now().UnixNano())
}

// LastUsed returns when the session was last accessed
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Submit creates an entry stamped with the current time, persists it and
// appends it to the session log.
func (s *Session) Submit(ctx context.Context, body string) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Submission{}, ErrSessionClosed
	}
	if s.rejectEmpty && strings.TrimSpace(body) == "" {
		return Submission{}, ErrEmptyBody
	}

	entry := journal.NewEntry(body, entryTime(s.now))
	rec, err := s.store.Create(ctx, store.FromEntry(entry))
	if err != nil {
		return Submission{}, fmt.Errorf("failed to persist entry: %w", err)
	}
	s.observer.EntryCreated()

	s.log.Append(entry)
	target, err := s.presenter.ScrollTargetIndex(s.log)
	if err != nil {
		return Submission{}, err
	}
	return Submission{Record: rec, ScrollTargetIndex: &target, Version: s.version}, nil
}

// Snapshot returns every row plus the scroll target
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.ID,
		Version:   s.version,
		ChangedAt: s.changedAt,
		RowCount:  s.presenter.RowCount(s.log),
		Rows:      s.presenter.Rows(s.log),
	}
	if target, err := s.presenter.ScrollTargetIndex(s.log); err == nil {
		snap.ScrollTargetIndex = &target
	}
	return snap
}

// Row returns the row at index
func (s *Session) Row(index int) (journal.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presenter.RowContent(s.log, index)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.unsubscribe()
}
