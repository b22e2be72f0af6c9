package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"journal-go/internal/journal"
	"journal-go/internal/model"
)

// pgxPool is the subset of *pgxpool.Pool the store uses, so tests can substitute pgxmock.
type pgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

const pgEntryColumns = `id, user_id, date, content, summary, sentiment_score::float8, tags, memory_weight, created_at, updated_at`

const (
	pgListEntries = `SELECT ` + pgEntryColumns + ` FROM entries WHERE user_id = $1 ORDER BY date DESC`

	pgListEntriesInRange = `SELECT ` + pgEntryColumns + ` FROM entries
		WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC`

	pgGetEntryForDate = `SELECT ` + pgEntryColumns + ` FROM entries WHERE user_id = $1 AND date = $2`

	pgInsertEntry = `INSERT INTO entries
		(id, user_id, date, content, summary, sentiment_score, tags, memory_weight, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	pgUpdateEntry = `UPDATE entries
		SET content = $1, summary = $2, sentiment_score = $3, tags = $4, memory_weight = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8`
)

// PostgresStore implements journal.EntryStore against a hosted Postgres
// "entries" table (date as DATE, tags as TEXT[]). The schema is managed by
// the hosting provider, not by this binary.
type PostgresStore struct {
	pool pgxPool
}

// NewPostgresStore connects to url and verifies the connection.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStoreFromPool wraps an existing pool.
func NewPostgresStoreFromPool(pool pgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) ListEntries(ctx context.Context, userID string) ([]model.Entry, error) {
	rows, err := s.pool.Query(ctx, pgListEntries, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return collectPgEntries(rows)
}

func (s *PostgresStore) ListEntriesInRange(ctx context.Context, userID string, start, end model.Date) ([]model.Entry, error) {
	rows, err := s.pool.Query(ctx, pgListEntriesInRange, userID, start.Time(), end.Time())
	if err != nil {
		return nil, fmt.Errorf("listing entries in range: %w", err)
	}
	return collectPgEntries(rows)
}

func (s *PostgresStore) GetEntryForDate(ctx context.Context, userID string, date model.Date) (*model.Entry, error) {
	e, err := scanPgEntry(s.pool.QueryRow(ctx, pgGetEntryForDate, userID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding entry for date: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) CreateEntry(ctx context.Context, e *model.Entry) error {
	_, err := s.pool.Exec(ctx, pgInsertEntry,
		e.ID, e.UserID, e.Date.Time(), e.Content, e.Summary, e.SentimentScore,
		nonNilTags(e.Tags), e.MemoryWeight, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateEntry(ctx context.Context, e *model.Entry) error {
	tag, err := s.pool.Exec(ctx, pgUpdateEntry,
		e.Content, e.Summary, e.SentimentScore, nonNilTags(e.Tags), e.MemoryWeight, e.UpdatedAt,
		e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry not found: %s", e.ID)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPgEntry(row pgx.Row) (model.Entry, error) {
	var e model.Entry
	var date time.Time
	err := row.Scan(&e.ID, &e.UserID, &date, &e.Content, &e.Summary, &e.SentimentScore,
		&e.Tags, &e.MemoryWeight, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Entry{}, err
	}
	e.Date = model.DateOf(date)
	return e, nil
}

func collectPgEntries(rows pgx.Rows) ([]model.Entry, error) {
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanPgEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

var _ journal.EntryStore = (*PostgresStore)(nil)
