package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "/custom/config.toml")
		t.Setenv(HomeEnv, "/custom/journal")

		got, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		want := Defaults{
			ConfigPath: "/custom/config.toml",
			BaseDir:    "/custom/journal",
			LogDir:     "/custom/journal/log",
			DataDir:    "/custom/journal/db",
		}
		if got != want {
			t.Errorf("GetDefaults() = %+v, want %+v", got, want)
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "")
		t.Setenv(HomeEnv, "")

		got, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		wantBase := filepath.Join(homeDir, ".local", "share", "journal")
		want := Defaults{
			ConfigPath: filepath.Join(homeDir, ".config", "journal.toml"),
			BaseDir:    wantBase,
			LogDir:     filepath.Join(wantBase, "log"),
			DataDir:    filepath.Join(wantBase, "db"),
		}
		if got != want {
			t.Errorf("GetDefaults() = %+v, want %+v", got, want)
		}
	})
}
