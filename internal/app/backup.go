package app

import (
	"fmt"
	"os"
	"path/filepath"

	"journal-go/internal/config"
	"journal-go/internal/database"
	"journal-go/internal/model"
	"journal-go/internal/vault"
)

// VaultStatus is the snapshot version a vault holds for the user.
type VaultStatus struct {
	Name    string
	Type    string
	Version int64
	Err     error
}

// BackupStatus compares the local operation log with every vault.
type BackupStatus struct {
	LocalVersion int64
	Vaults       []VaultStatus
	History      []model.BackupOperation
}

// BackupStatus reports snapshot versions and the most recent operations.
func (a *App) BackupStatus(historyLimit int) (*BackupStatus, error) {
	if a.sqlite == nil {
		return nil, fmt.Errorf("backups require a sqlite database (type=%s)", a.cfg.Database.Type)
	}

	local, err := a.sqlite.LatestSuccessfulBackup()
	if err != nil {
		return nil, err
	}
	history, err := a.sqlite.ListBackupOperations(historyLimit)
	if err != nil {
		return nil, err
	}

	status := &BackupStatus{LocalVersion: local, History: history}
	for i, v := range a.vaults {
		version, err := v.GetSnapshotVersion(a.cfg.UserID)
		status.Vaults = append(status.Vaults, VaultStatus{
			Name:    a.cfg.Vaults[i].Name,
			Type:    a.cfg.Vaults[i].Type,
			Version: version,
			Err:     err,
		})
	}
	return status, nil
}

// Restore replaces the local SQLite database with the snapshot held by the
// named vault (the first vault when name is empty). The current database is
// kept next to it with a .bak suffix. Restore does not go through NewApp,
// since NewApp refuses to open a database that is behind its vault.
func Restore(cfg *config.Config, vaultName string) (string, error) {
	if cfg.Database.Type != "sqlite" {
		return "", fmt.Errorf("restore requires a sqlite database (type=%s)", cfg.Database.Type)
	}

	vc, err := findVault(cfg, vaultName)
	if err != nil {
		return "", err
	}
	v, err := vault.NewVaultFromConfig(vc)
	if err != nil {
		return "", fmt.Errorf("creating vault %s: %w", vc.Name, err)
	}

	if err := os.MkdirAll(cfg.Database.DataDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	dest := filepath.Join(cfg.Database.DataDir, cfg.UserID+".db")

	tmp, err := os.CreateTemp(cfg.Database.DataDir, ".restore-*.db")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := v.GetSnapshot(cfg.UserID, tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("downloading snapshot from %s: %w", vc.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	// Make sure what we downloaded is a usable journal before swapping it in.
	restored, err := database.NewSQLiteStore(tmpPath)
	if err != nil {
		return "", fmt.Errorf("opening downloaded snapshot: %w", err)
	}
	restored.Close()

	if _, err := os.Stat(dest); err == nil {
		if err := os.Rename(dest, dest+".bak"); err != nil {
			return "", fmt.Errorf("keeping previous database: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("installing restored database: %w", err)
	}
	return dest, nil
}

func findVault(cfg *config.Config, name string) (config.VaultConfig, error) {
	if len(cfg.Vaults) == 0 {
		return config.VaultConfig{}, fmt.Errorf("no vaults configured")
	}
	if name == "" {
		return cfg.Vaults[0], nil
	}
	for _, vc := range cfg.Vaults {
		if vc.Name == name {
			return vc, nil
		}
	}
	return config.VaultConfig{}, fmt.Errorf("unknown vault: %s", name)
}
