// Package store persists journal entries. PostgresStore is the production
// backend; MemoryStore backs tests and the memory storage driver. CachedStore
// adds a Redis read-through cache in front of either.
package store

import (
	"context"
	"errors"
	"time"

	"io.winapps.vybes/internal/journal"
)

var ErrNotFound = errors.New("entry not found")

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Record is the persisted shape of an entry
type Record struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromEntry converts a journal entry into a record without an ID
func FromEntry(e journal.Entry) Record {
	return Record{Date: e.Date(), Body: e.Body()}
}

// Entry converts the record back into a journal entry
func (r Record) Entry() journal.Entry {
	return journal.NewEntry(r.Body, r.Date)
}

// Page selects a window of records. Page numbers start at 1.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies defaults and bounds
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset returns the number of records to skip
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResult is one page of records plus the total count
type PageResult struct {
	Records []Record
	Total   int
}

// EntryStore is the create/read API over persisted entries. List returns
// records in append order.
type EntryStore interface {
	Create(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, page Page) (PageResult, error)
}

// LoadAll pages through the store and returns every entry in append order
func LoadAll(ctx context.Context, s EntryStore) ([]journal.Entry, error) {
	var entries []journal.Entry
	page := Page{Page: 1, Limit: MaxPageSize}
	for {
		res, err := s.List(ctx, page)
		if err != nil {
			return nil, err
		}
		for _, rec := range res.Records {
			entries = append(entries, rec.Entry())
		}
		if len(res.Records) == 0 || page.Page*page.Limit >= res.Total {
			return entries, nil
		}
		page.Page++
	}
}

func stamp(rec Record, now time.Time) Record {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	return rec
}
