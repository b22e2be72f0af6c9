package database

import (
	"os"
	"path/filepath"
	"testing"

	"journal-go/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	t.Run("memory database", func(t *testing.T) {
		got, err := NewStoreFromConfig(config.DatabaseConfig{Type: "memory"}, "user-123")
		if err != nil {
			t.Fatalf("NewStoreFromConfig() unexpected error: %v", err)
		}
		defer got.Close()

		if _, ok := got.(*SQLiteStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *SQLiteStore", got)
		}
	})

	t.Run("sqlite database", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "db")
		cfg := config.DatabaseConfig{Type: "sqlite", DataDir: dataDir}

		got, err := NewStoreFromConfig(cfg, "user-123")
		if err != nil {
			t.Fatalf("NewStoreFromConfig() unexpected error: %v", err)
		}
		defer got.Close()

		if _, err := os.Stat(filepath.Join(dataDir, "user-123.db")); err != nil {
			t.Errorf("database file not created: %v", err)
		}
		if err := got.(*SQLiteStore).CheckMigrations(); err != nil {
			t.Errorf("CheckMigrations() error = %v", err)
		}
	})

	tests := []struct {
		name string
		cfg  config.DatabaseConfig
	}{
		{"sqlite database without data_dir", config.DatabaseConfig{Type: "sqlite"}},
		{"postgres without url", config.DatabaseConfig{Type: "postgres"}},
		{"unknown database type", config.DatabaseConfig{Type: "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.DatabaseURLEnv, "")

			got, err := NewStoreFromConfig(tt.cfg, "user-123")
			if err == nil {
				t.Error("NewStoreFromConfig() expected error, got nil")
			}
			if got != nil {
				t.Error("NewStoreFromConfig() should return nil on error")
				got.Close()
			}
		})
	}
}
