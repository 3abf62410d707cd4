package journal

import "fmt"

// Listener is notified after the contents of an EntryLog change.
type Listener interface {
	EntriesChanged(log *EntryLog)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(log *EntryLog)

// EntriesChanged calls f(log)
func (f ListenerFunc) EntriesChanged(log *EntryLog) {
	f(log)
}

type subscription struct {
	id       int
	listener Listener
}

// EntryLog is an ordered, append-only collection of entries. Newest entries
// are at the end. It is not safe for concurrent use; the owner serialises access.
type EntryLog struct {
	entries     []Entry
	subscribers []subscription
	nextSubID   int
}

// NewEntryLog returns a log seeded with entries in the given order.
// Seeding does not notify listeners.
func NewEntryLog(entries ...Entry) *EntryLog {
	log := &EntryLog{}
	if len(entries) > 0 {
		log.entries = make([]Entry, len(entries))
		copy(log.entries, entries)
	}
	return log
}

// Append adds entry to the end of the log and notifies listeners in
// subscription order.
func (l *EntryLog) Append(entry Entry) {
	l.entries = append(l.entries, entry)

	// Listeners may unsubscribe while being notified.
	subs := make([]subscription, len(l.subscribers))
	copy(subs, l.subscribers)
	for _, s := range subs {
		s.listener.EntriesChanged(l)
	}
}

// Count returns the number of entries held
func (l *EntryLog) Count() int {
	return len(l.entries)
}

// At returns the entry at index.
func (l *EntryLog) At(index int) (Entry, error) {
	if index < 0 || index >= len(l.entries) {
		return Entry{}, fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfRange, index, len(l.entries))
	}
	return l.entries[index], nil
}

// Entries returns a copy of the entries in append order.
func (l *EntryLog) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Subscribe registers listener and returns a function that removes it.
// The returned function is safe to call more than once.
func (l *EntryLog) Subscribe(listener Listener) (unsubscribe func()) {
	id := l.nextSubID
	l.nextSubID++
	l.subscribers = append(l.subscribers, subscription{id: id, listener: listener})

	return func() {
		for i, s := range l.subscribers {
			if s.id == id {
				l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered listeners
func (l *EntryLog) Listeners() int {
	return len(l.subscribers)
}
