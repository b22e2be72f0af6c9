package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"journal-go/internal/database/migrations"
	"journal-go/internal/journal"
	"journal-go/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const sqliteEntryColumns = `id, user_id, date, content, summary, sentiment_score, tags, memory_weight, created_at, updated_at`

// SQLiteStore implements journal.EntryStore on a local SQLite file.
// It also keeps the backup operation log used for vault snapshots.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the database at path (or ":memory:") and applies pending migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// OpenConnection opens a SQLite connection with the PRAGMAs the store relies on.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return db, nil
}

// Entry operations

func (s *SQLiteStore) ListEntries(ctx context.Context, userID string) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteEntryColumns+` FROM entries WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return collectEntries(rows)
}

func (s *SQLiteStore) ListEntriesInRange(ctx context.Context, userID string, start, end model.Date) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteEntryColumns+` FROM entries
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing entries in range: %w", err)
	}
	return collectEntries(rows)
}

func (s *SQLiteStore) GetEntryForDate(ctx context.Context, userID string, date model.Date) (*model.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteEntryColumns+` FROM entries WHERE user_id = ? AND date = ?`, userID, date)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding entry for date: %w", err)
	}
	return &e, nil
}

func (s *SQLiteStore) CreateEntry(ctx context.Context, e *model.Entry) error {
	tags, err := encodeTags(e.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (`+sqliteEntryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Date, e.Content, e.Summary, e.SentimentScore, tags, e.MemoryWeight,
		e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateEntry(ctx context.Context, e *model.Entry) error {
	tags, err := encodeTags(e.Tags)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE entries
		 SET content = ?, summary = ?, sentiment_score = ?, tags = ?, memory_weight = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		e.Content, e.Summary, e.SentimentScore, tags, e.MemoryWeight, e.UpdatedAt.UTC(), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry not found: %s", e.ID)
	}
	return nil
}

// Backup operations

func (s *SQLiteStore) CreateBackupOperation(operation string, startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO backup_operations (operation, status, started_at) VALUES (?, 'running', ?)`,
		operation, startedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("creating backup operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating backup operation: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) FinishBackupOperation(id int64, status string, finishedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE backup_operations SET status = ?, finished_at = ? WHERE id = ?`,
		status, finishedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("finishing backup operation: %w", err)
	}
	return nil
}

// ListBackupOperations returns the most recent operations first.
func (s *SQLiteStore) ListBackupOperations(limit int) ([]model.BackupOperation, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, status, started_at, finished_at
		 FROM backup_operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing backup operations: %w", err)
	}
	defer rows.Close()

	var ops []model.BackupOperation
	for rows.Next() {
		var op model.BackupOperation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Operation, &op.Status, &op.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning backup operation: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			op.FinishedAt = &t
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// LatestSuccessfulBackup returns the ID of the newest successful backup, or 0.
func (s *SQLiteStore) LatestSuccessfulBackup() (int64, error) {
	var id sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(id) FROM backup_operations WHERE status = 'success'`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("finding latest backup: %w", err)
	}
	return id.Int64, nil
}

// Lifecycle

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrationStatus reports the schema version.
func (s *SQLiteStore) MigrationStatus() (migrations.Status, error) {
	return migrations.GetStatus(s.db)
}

// BackupTo writes a consistent copy of the database to destPath using VACUUM INTO.
// destPath must not exist.
func (s *SQLiteStore) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Path returns the file the store was opened from.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.Entry, error) {
	var e model.Entry
	var tags string
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.Summary, &e.SentimentScore,
		&tags, &e.MemoryWeight, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Entry{}, err
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return model.Entry{}, fmt.Errorf("decoding tags for entry %s: %w", e.ID, err)
	}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]model.Entry, error) {
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
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

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(data), nil
}

// Compile-time check that SQLiteStore implements journal.EntryStore
var _ journal.EntryStore = (*SQLiteStore)(nil)
