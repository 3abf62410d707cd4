package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.winapps.vybes/internal/journal"
)

var base = time.Date(2018, 3, 20, 0, 29, 50, 0, time.UTC)

func seed(t *testing.T, s EntryStore, n int) []Record {
	t.Helper()
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		rec, err := s.Create(context.Background(), FromEntry(journal.NewEntry(fmt.Sprintf("entry %d", i), base.Add(time.Duration(i)*time.Minute))))
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestMemoryStoreCreateGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	t.Run("Should assign ID and timestamps", func(t *testing.T) {
		rec, err := s.Create(ctx, Record{Body: "Hello", Date: base})
		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
		assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("Should keep an empty body", func(t *testing.T) {
		rec, err := s.Create(ctx, Record{Body: "", Date: base})
		require.NoError(t, err)
		got, err := s.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "", got.Body)
	})

	t.Run("Should reject duplicate IDs", func(t *testing.T) {
		_, err := s.Create(ctx, Record{ID: "fixed", Date: base})
		require.NoError(t, err)
		_, err = s.Create(ctx, Record{ID: "fixed", Date: base})
		assert.Error(t, err)
	})

	t.Run("Should return ErrNotFound for unknown IDs", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore()
	recs := seed(t, s, 5)
	ctx := context.Background()

	tests := []struct {
		name      string
		page      Page
		wantFirst int
		wantLen   int
	}{
		{name: "defaults", page: Page{}, wantFirst: 0, wantLen: 5},
		{name: "first page", page: Page{Page: 1, Limit: 2}, wantFirst: 0, wantLen: 2},
		{name: "last partial page", page: Page{Page: 3, Limit: 2}, wantFirst: 4, wantLen: 1},
		{name: "past the end", page: Page{Page: 9, Limit: 2}, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.List(ctx, tt.page)
			require.NoError(t, err)
			assert.Equal(t, 5, res.Total)
			require.Len(t, res.Records, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, recs[tt.wantFirst].ID, res.Records[0].ID)
			}
		})
	}
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: DefaultPageSize}, Page{}.Normalize())
	assert.Equal(t, Page{Page: 2, Limit: MaxPageSize}, Page{Page: 2, Limit: 10000}.Normalize())
	assert.Equal(t, 20, Page{Page: 3, Limit: 10}.Offset())
}

func TestLoadAll(t *testing.T) {
	s := NewMemoryStore()
	recs := seed(t, s, MaxPageSize+3)

	entries, err := LoadAll(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, entries, len(recs))
	for i, e := range entries {
		assert.Equal(t, recs[i].Body, e.Body())
	}

	empty, err := LoadAll(context.Background(), NewMemoryStore())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
