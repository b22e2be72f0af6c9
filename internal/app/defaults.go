package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables that relocate journal's files.
const (
	ConfigPathEnv = "JOURNAL_CONFIG_PATH"
	HomeEnv       = "JOURNAL_HOME"
)

// Defaults are the file locations used when nothing else is configured.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
	DataDir    string
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - JOURNAL_CONFIG_PATH: config file location (default: ~/.config/journal.toml)
//   - JOURNAL_HOME: base directory for journal data (default: ~/.local/share/journal)
func GetDefaults() (Defaults, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Defaults{}, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return Defaults{}, err
	}

	return Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		DataDir:    filepath.Join(baseDir, "db"),
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "journal.toml"), nil
}

// getBaseDir falls back to the XDG default ~/.local/share/journal.
func getBaseDir() (string, error) {
	if path := os.Getenv(HomeEnv); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "journal"), nil
}
