package journal

import "time"

// Entry is a single journal record. It is immutable once constructed.
type Entry struct {
	body string
	date time.Time
}

// NewEntry creates an entry. An empty body is accepted.
func NewEntry(body string, date time.Time) Entry {
	return Entry{body: body, date: date}
}

// Body returns the text content of the entry
func (e Entry) Body() string {
	return e.body
}

// Date returns the creation timestamp of the entry
func (e Entry) Date() time.Time {
	return e.date
}
