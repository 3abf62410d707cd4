// Package session keeps the server-side equivalent of a presenting UI
// session: an EntryLog seeded from storage that grows as entries are
// submitted, and the presenter view of it.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"io.winapps.vybes/internal/journal"
	"io.winapps.vybes/internal/store"
)

const (
	CloseReasonClient = "client"
	CloseReasonIdle   = "idle"
)

// Observer receives lifecycle notifications, typically for metrics
type Observer interface {
	SessionOpened()
	SessionClosed(reason string)
	EntryCreated()
	EntryAppended()
}

type nopObserver struct{}

func (nopObserver) SessionOpened()       {}
func (nopObserver) SessionClosed(string) {}
func (nopObserver) EntryCreated()        {}
func (nopObserver) EntryAppended()       {}

// Options configure a Manager
type Options struct {
	RejectEmptyEntries bool
	Observer           Observer
	Logger             *zap.SugaredLogger
	Now                func() time.Time
}

// Manager tracks open sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store       store.EntryStore
	observer    Observer
	logger      *zap.SugaredLogger
	now         func() time.Time
	rejectEmpty bool
}

// NewManager creates a session manager backed by st
func NewManager(st store.EntryStore, opts Options) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		store:       st,
		observer:    opts.Observer,
		logger:      opts.Logger,
		now:         opts.Now,
		rejectEmpty: opts.RejectEmptyEntries,
	}
	if m.observer == nil {
		m.observer = nopObserver{}
	}
	if m.logger == nil {
		m.logger = zap.NewNop().Sugar()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Open creates a session whose log holds every stored entry in append order
func (m *Manager) Open(ctx context.Context) (*Session, error) {
	entries, err := store.LoadAll(ctx, m.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	sess := newSession(uuid.New().String(), journal.NewEntryLog(entries...), m.store, m.observer, m.now, m.rejectEmpty)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.observer.SessionOpened()
	m.logger.Infow("session opened", "session_id", sess.ID, "entries", len(entries))
	return sess, nil
}

// Get returns an open session and marks it as used
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch()
	return sess, nil
}

// Close removes a session and detaches its listener
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.close()
	m.observer.SessionClosed(CloseReasonClient)
	m.logger.Infow("session closed", "session_id", id)
	return nil
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepIdle closes sessions unused for longer than maxIdle and returns how
// many were closed.
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var stale []*Session
	for id, sess := range m.sessions {
		if sess.LastUsed().Before(cutoff) {
			stale = append(stale, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range stale {
		sess.close()
		m.observer.SessionClosed(CloseReasonIdle)
		m.logger.Infow("idle session closed", "session_id", sess.ID, "last_used", sess.LastUsed())
	}
	return len(stale)
}

// CreateEntry persists a new entry. With a session ID the entry is also
// appended to that session's log; without one it is only stored.
func (m *Manager) CreateEntry(ctx context.Context, sessionID, body string) (Submission, error) {
	if sessionID != "" {
		sess, err := m.Get(sessionID)
		if err != nil {
			return Submission{}, err
		}
		return sess.Submit(ctx, body)
	}

	if m.rejectEmpty && strings.TrimSpace(body) == "" {
		return Submission{}, ErrEmptyBody
	}
	rec, err := m.store.Create(ctx, store.FromEntry(journal.NewEntry(body, entryTime(m.now))))
	if err != nil {
		return Submission{}, fmt.Errorf("failed to persist entry: %w", err)
	}
	m.observer.EntryCreated()
	return Submission{Record: rec}, nil
}
