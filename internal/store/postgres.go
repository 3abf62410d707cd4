package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool used by PostgresStore
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore persists entries in the entries table
type PostgresStore struct {
	pool Querier
}

// NewPostgresStore creates a store over an initialized pool
func NewPostgresStore(pool Querier) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Create inserts a new entry row
func (s *PostgresStore) Create(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec = stamp(rec, time.Now().Truncate(time.Microsecond))

	query := `
		INSERT INTO entries (id, date, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.pool.Exec(ctx, query, rec.ID, rec.Date, rec.Body, rec.CreatedAt, rec.UpdatedAt); err != nil {
		return Record{}, fmt.Errorf("failed to create entry: %w", err)
	}
	return rec, nil
}

// Get fetches a single entry by ID
func (s *PostgresStore) Get(ctx context.Context, id string) (Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var rec Record
	query := `
		SELECT id, date, body, created_at, updated_at
		FROM entries
		WHERE id = $1
	`
	err := s.pool.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Date, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to fetch entry: %w", err)
	}
	return rec, nil
}

// List returns a page of entries ordered by date, oldest first
func (s *PostgresStore) List(ctx context.Context, page Page) (PageResult, error) {
	page = page.Normalize()

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries`).Scan(&total); err != nil {
		return PageResult{}, fmt.Errorf("failed to count entries: %w", err)
	}

	query := `
		SELECT id, date, body, created_at, updated_at
		FROM entries
		ORDER BY date ASC, created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return PageResult{}, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Body, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return PageResult{}, fmt.Errorf("failed to scan entry: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return PageResult{}, fmt.Errorf("failed to read entries: %w", err)
	}

	return PageResult{Records: records, Total: total}, nil
}
