package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"journal-go/internal/ai"
	"journal-go/internal/analytics"
	"journal-go/internal/config"
	"journal-go/internal/database"
	"journal-go/internal/journal"
	"journal-go/internal/model"
	"journal-go/internal/vault"
)

// App is the application layer between the CLI (or HTTP server) and the
// journal Service. It constructs all dependencies from config, tracks the
// operation being run, and on Close snapshots the database to the vaults
// when the operation changed it.
type App struct {
	cfg       *config.Config
	store     journal.EntryStore
	sqlite    *database.SQLiteStore // nil unless the store is SQLite-backed
	vaults    []journal.Vault
	assistant ai.Assistant
	service   *journal.Service
	clock     journal.Clock
	op        *Operation
	logger    *slog.Logger
	logFile   *os.File
}

// Option customizes NewApp.
type Option func(*options)

type options struct {
	wrapAnalyzer func(journal.Analyzer) journal.Analyzer
}

// WithAnalyzerWrapper decorates the analyzer the service uses, e.g. with metrics.
func WithAnalyzerWrapper(wrap func(journal.Analyzer) journal.Analyzer) Option {
	return func(o *options) { o.wrapAnalyzer = wrap }
}

// NewApp creates a fully wired App from the given config.
// operation names the command being run (e.g. "write", "backup").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.UserID == "" {
		return nil, fmt.Errorf("config has no user_id")
	}

	vaults := make([]journal.Vault, 0, len(cfg.Vaults))
	for _, vc := range cfg.Vaults {
		v, err := vault.NewVaultFromConfig(vc)
		if err != nil {
			return nil, fmt.Errorf("creating vault %s: %w", vc.Name, err)
		}
		vaults = append(vaults, v)
	}

	store, err := database.NewStoreFromConfig(cfg.Database, cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("creating entry store: %w", err)
	}

	sqlite, _ := store.(*database.SQLiteStore)
	if sqlite != nil {
		if err := sqlite.CheckMigrations(); err != nil {
			store.Close()
			return nil, fmt.Errorf("database schema out of date: %w", err)
		}
		if err := checkSnapshotVersions(sqlite, vaults, cfg.UserID); err != nil {
			store.Close()
			return nil, err
		}
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	// Commands that never call the model still work without credentials.
	assistant, err := ai.NewFromConfig(cfg.Analysis)
	if err != nil {
		assistant = unavailableAssistant{err: err}
	}

	var analyzer journal.Analyzer = assistant
	if o.wrapAnalyzer != nil {
		analyzer = o.wrapAnalyzer(analyzer)
	}

	clock := journal.RealClock{}
	svc := journal.NewService(store, analyzer, assistant, &slogAdapter{l: logger}, clock, journal.UUIDGenerator{})

	return &App{
		cfg:       cfg,
		store:     store,
		sqlite:    sqlite,
		vaults:    vaults,
		assistant: assistant,
		service:   svc,
		clock:     clock,
		op:        NewOperation(operation),
		logger:    logger,
		logFile:   logFile,
	}, nil
}

// checkSnapshotVersions refuses to open a local database that is older than
// a snapshot already pushed to a vault.
func checkSnapshotVersions(db *database.SQLiteStore, vaults []journal.Vault, userID string) error {
	localMax, err := db.LatestSuccessfulBackup()
	if err != nil {
		return fmt.Errorf("checking local snapshot version: %w", err)
	}
	for _, v := range vaults {
		remote, err := v.GetSnapshotVersion(userID)
		if err != nil {
			return fmt.Errorf("checking remote snapshot version: %w", err)
		}
		if remote > localMax {
			return fmt.Errorf("local database is behind remote (local=%d, remote=%d): run 'journal backup restore' or re-initialize", localMax, remote)
		}
	}
	return nil
}

// Service exposes the journal operations.
func (a *App) Service() *journal.Service { return a.service }

func (a *App) UserID() string { return a.cfg.UserID }

func (a *App) Config() *config.Config { return a.cfg }

func (a *App) Logger() *slog.Logger { return a.logger }

// Assistant returns the model client, which may report a configuration error on use.
func (a *App) Assistant() ai.Assistant { return a.assistant }

// persistOperation records the operation in the database so Close knows to
// snapshot it. Only SQLite stores keep an operation log.
func (a *App) persistOperation() error {
	if a.sqlite == nil || a.op.Persisted() {
		return nil
	}
	id, err := a.sqlite.CreateBackupOperation(a.op.Name, a.clock.Now())
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = id
	return nil
}

// TrackChanges marks a long-running operation, such as the HTTP server, as
// one that may modify the database, so Close snapshots it.
func (a *App) TrackChanges() error {
	return a.persistOperation()
}

// WriteToday stores content as today's entry.
func (a *App) WriteToday(ctx context.Context, content string) (*model.Entry, bool, error) {
	if err := a.persistOperation(); err != nil {
		return nil, false, err
	}
	entry, created, err := a.service.WriteToday(ctx, a.cfg.UserID, content)
	if err != nil {
		a.op.Fail()
		return nil, false, err
	}
	return entry, created, nil
}

func (a *App) Today(ctx context.Context) (*model.Entry, error) {
	return a.service.TodayEntry(ctx, a.cfg.UserID)
}

func (a *App) Entries(ctx context.Context) ([]model.Entry, error) {
	return a.service.Entries(ctx, a.cfg.UserID)
}

// Trends uses the configured window when windowDays is zero.
func (a *App) Trends(ctx context.Context, windowDays int) (analytics.TrendSummary, error) {
	if windowDays == 0 {
		windowDays = a.cfg.Trends.WindowDays
	}
	return a.service.Trends(ctx, a.cfg.UserID, windowDays)
}

func (a *App) Calendar(ctx context.Context) ([][]analytics.DayCell, error) {
	return a.service.Calendar(ctx, a.cfg.UserID)
}

// AverageSentiment is the mean score over the last days days.
func (a *App) AverageSentiment(ctx context.Context, days int) (float64, error) {
	return a.service.AverageSentiment(ctx, a.cfg.UserID, days)
}

func (a *App) CommonTags(ctx context.Context, limit int) ([]analytics.TagCount, error) {
	return a.service.CommonTags(ctx, a.cfg.UserID, limit)
}

func (a *App) Reflect(ctx context.Context) (string, error) {
	return a.service.Reflect(ctx, a.cfg.UserID)
}

func (a *App) WritingHelp(ctx context.Context, current string) (string, error) {
	return a.service.WritingHelp(ctx, current)
}

// Backup marks the operation for a snapshot; the upload happens on Close.
func (a *App) Backup() error {
	if a.sqlite == nil {
		return fmt.Errorf("backups require a sqlite database (type=%s)", a.cfg.Database.Type)
	}
	if len(a.vaults) == 0 {
		return fmt.Errorf("no vaults configured")
	}
	return a.persistOperation()
}

// Close finalizes the operation and closes all resources.
// For persisted operations: finishes the operation record, snapshots the
// database and uploads the snapshot to every vault with version = operation ID.
// Otherwise it just closes the store.
func (a *App) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.op.Persisted() {
		keep(a.sqlite.FinishBackupOperation(a.op.ID, a.op.Status, a.clock.Now()))

		var snapshot string
		tmpDir, err := os.MkdirTemp("", "journal-snapshot-*")
		if err != nil {
			keep(fmt.Errorf("creating temp dir for snapshot: %w", err))
		} else {
			defer os.RemoveAll(tmpDir)
			snapshot = filepath.Join(tmpDir, a.cfg.UserID+".db")
			if err := a.sqlite.BackupTo(snapshot); err != nil {
				keep(err)
				snapshot = ""
			}
		}

		keep(wrap("closing database", a.store.Close()))

		if snapshot != "" && a.op.Status == StatusSuccess {
			for i, v := range a.vaults {
				if err := uploadSnapshot(v, a.cfg.UserID, snapshot, a.op.ID); err != nil {
					keep(fmt.Errorf("vault %s: %w", a.cfg.Vaults[i].Name, err))
					continue
				}
				a.logger.Info("snapshot uploaded", "vault", a.cfg.Vaults[i].Name, "version", a.op.ID)
			}
		}
	} else {
		keep(wrap("closing database", a.store.Close()))
	}

	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

func uploadSnapshot(v journal.Vault, userID, path string, version int64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening snapshot for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	if err := v.PutSnapshot(userID, f, info.Size(), version); err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}
	return nil
}

func wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// unavailableAssistant stands in when the model client cannot be built.
type unavailableAssistant struct {
	err error
}

func (u unavailableAssistant) Analyze(context.Context, string) (model.Analysis, error) {
	return model.Analysis{}, u.err
}

func (u unavailableAssistant) ReflectionPrompt(context.Context, string) (string, error) {
	return "", u.err
}

func (u unavailableAssistant) WritingStarter(context.Context, string) (string, error) {
	return "", u.err
}
