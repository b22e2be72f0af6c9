package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		UserID:  "user-abc",
		BaseDir: "/home/user/.local/share/journal",
		LogDir:  "/home/user/.local/share/journal/log",
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: "/home/user/.local/share/journal/db",
		},
		Vaults: []VaultConfig{
			{Type: "filesystem", Name: "local", FSVaultRoot: "/backup/vault"},
			{Type: "s3", Name: "remote", S3Bucket: "journal", S3Prefix: "me", S3Region: "eu-west-1", S3Endpoint: "http://localhost:9000"},
		},
		Analysis: AnalysisConfig{Type: "test", Model: "some-model", MaxTokens: 500},
		Server:   ServerConfig{Addr: ":9090", RateLimit: 2, RateBurst: 3},
		Trends:   TrendsConfig{WindowDays: 14},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !reflect.DeepEqual(got, original) {
		t.Errorf("round trip mismatch\n got = %+v\nwant = %+v", got, original)
	}
}

func TestManager_ReadAppliesDefaults(t *testing.T) {
	input := `
user_id = "u1"
base_dir = "/data"

[database]
type = "memory"
`
	m := &Manager{}
	cfg, err := m.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if cfg.Trends.WindowDays != DefaultWindowDays {
		t.Errorf("Trends.WindowDays = %d, want %d", cfg.Trends.WindowDays, DefaultWindowDays)
	}
	if cfg.Analysis.Type != "anthropic" {
		t.Errorf("Analysis.Type = %q, want %q", cfg.Analysis.Type, "anthropic")
	}
	if cfg.Analysis.Model != DefaultModel {
		t.Errorf("Analysis.Model = %q, want %q", cfg.Analysis.Model, DefaultModel)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}
	if cfg.Server.RateBurst != DefaultRateBurst {
		t.Errorf("Server.RateBurst = %d, want %d", cfg.Server.RateBurst, DefaultRateBurst)
	}
}

func TestManager_ReadInvalid(t *testing.T) {
	m := &Manager{}
	if _, err := m.Read(strings.NewReader("user_id = ")); err == nil {
		t.Fatal("Read() expected error for malformed toml")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("user-1", "/data/journal")

	if cfg.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", cfg.UserID, "user-1")
	}
	if cfg.BaseDir != "/data/journal" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/journal")
	}
	if cfg.LogDir != "/data/journal/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/journal/log")
	}
	if cfg.Database.Type != "sqlite" || cfg.Database.DataDir != "/data/journal/db" {
		t.Errorf("Database = %+v, want sqlite in /data/journal/db", cfg.Database)
	}
	if cfg.Trends.WindowDays != 30 {
		t.Errorf("Trends.WindowDays = %d, want 30", cfg.Trends.WindowDays)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "journal.toml")

		if err := Init(path, NewConfig("u1", dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "journal.toml")
		cfg := NewConfig("u1", dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "journal.toml")
		cfg := NewConfig("read-test", dir)
		cfg.Database = DatabaseConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.UserID != "read-test" {
			t.Errorf("UserID = %q, want %q", got.UserID, "read-test")
		}
		if got.Database.Type != "memory" {
			t.Errorf("Database.Type = %q, want %q", got.Database.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/journal.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("JOURNAL_TEST_SET", "value")
	t.Setenv("JOURNAL_TEST_BLANK", "  ")
	os.Unsetenv("JOURNAL_TEST_UNSET")

	if err := CheckEnv("JOURNAL_TEST_SET"); err != nil {
		t.Errorf("CheckEnv() error = %v, want nil", err)
	}

	err := CheckEnv("JOURNAL_TEST_SET", "JOURNAL_TEST_BLANK", "JOURNAL_TEST_UNSET")
	var missing *MissingEnvError
	if !errors.As(err, &missing) {
		t.Fatalf("CheckEnv() error = %v, want *MissingEnvError", err)
	}
	want := []string{"JOURNAL_TEST_BLANK", "JOURNAL_TEST_UNSET"}
	if !reflect.DeepEqual(missing.Names, want) {
		t.Errorf("missing = %v, want %v", missing.Names, want)
	}
	if !strings.Contains(err.Error(), "JOURNAL_TEST_BLANK, JOURNAL_TEST_UNSET") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("JOURNAL_TEST_FROM_FILE=hello\nJOURNAL_TEST_PRESET=file\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("JOURNAL_TEST_PRESET", "process")
	t.Setenv("JOURNAL_TEST_FROM_FILE", "")
	os.Unsetenv("JOURNAL_TEST_FROM_FILE")
	t.Cleanup(func() { os.Unsetenv("JOURNAL_TEST_FROM_FILE") })

	if err := LoadEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := os.Getenv("JOURNAL_TEST_FROM_FILE"); got != "hello" {
		t.Errorf("JOURNAL_TEST_FROM_FILE = %q, want %q", got, "hello")
	}
	if got := os.Getenv("JOURNAL_TEST_PRESET"); got != "process" {
		t.Errorf("JOURNAL_TEST_PRESET = %q, want %q", got, "process")
	}
}
