package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"journal-go/internal/config"
	"journal-go/internal/journal"
)

// NewStoreFromConfig creates an EntryStore based on the database config type.
// SQLite stores are migrated on open; the postgres schema is managed externally.
func NewStoreFromConfig(cfg config.DatabaseConfig, userID string) (journal.EntryStore, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		store, err := NewSQLiteStore(filepath.Join(cfg.DataDir, userID+".db"))
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		store, err := NewSQLiteStore(":memory:")
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres":
		url := cfg.URL
		if env := os.Getenv(config.DatabaseURLEnv); env != "" {
			url = env
		}
		if url == "" {
			return nil, fmt.Errorf("postgres database requires url or %s", config.DatabaseURLEnv)
		}
		store, err := NewPostgresStore(context.Background(), url)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
