package journal

import "errors"

var (
	// ErrIndexOutOfRange is returned by EntryLog.At when the index is outside [0, Count).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyLog is returned when an operation needs at least one entry.
	ErrEmptyLog = errors.New("entry log is empty")
)
