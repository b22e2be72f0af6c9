package journal

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"journal-go/internal/model"
)

// EntryStore persists journal entries. Lookups that find nothing return nil, nil.
type EntryStore interface {
	// ListEntries returns every entry for the user, newest date first.
	ListEntries(ctx context.Context, userID string) ([]model.Entry, error)

	// ListEntriesInRange returns entries dated start..end inclusive, oldest first.
	ListEntriesInRange(ctx context.Context, userID string, start, end model.Date) ([]model.Entry, error)

	GetEntryForDate(ctx context.Context, userID string, date model.Date) (*model.Entry, error)
	CreateEntry(ctx context.Context, e *model.Entry) error
	UpdateEntry(ctx context.Context, e *model.Entry) error

	Close() error
}

// Analyzer scores free text. Results may be out of range; callers clamp.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (model.Analysis, error)
}

// Prompter produces short writing aids.
type Prompter interface {
	// ReflectionPrompt asks a follow-up question about a finished entry.
	ReflectionPrompt(ctx context.Context, content string) (string, error)

	// WritingStarter suggests how to begin or continue an entry. current may be empty.
	WritingStarter(ctx context.Context, current string) (string, error)
}

// Vault stores database snapshots off the local machine.
type Vault interface {
	// PutSnapshot stores the user's snapshot. size is the number of bytes
	// that will be read from r; version is kept alongside for status checks.
	PutSnapshot(userID string, r io.Reader, size int64, version int64) error

	GetSnapshot(userID string, w io.Writer) error

	// GetSnapshotVersion returns 0 if no snapshot has been stored.
	GetSnapshotVersion(userID string) (int64, error)

	ValidateSetup() error
}

// Clock abstracts time retrieval so "today" is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts entry ID generation.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// Logger provides structured logging for the service layer.
// The args follow slog conventions: alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards all output.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}
