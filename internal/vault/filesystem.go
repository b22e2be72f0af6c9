package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"journal-go/internal/journal"
)

// FileSystemVault stores snapshots under a root directory, typically a
// mounted backup drive or a synced folder:
//
//	<root>/
//	  snapshots/
//	    <userID>.db       (latest database snapshot)
//	    <userID>.version  (its version)
type FileSystemVault struct {
	name         string
	root         string
	snapshotsDir string
}

// NewFileSystemVault creates the directory layout under root if needed.
func NewFileSystemVault(name, root string) (*FileSystemVault, error) {
	snapshotsDir := filepath.Join(root, "snapshots")
	if err := os.MkdirAll(snapshotsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	return &FileSystemVault{
		name:         name,
		root:         root,
		snapshotsDir: snapshotsDir,
	}, nil
}

// PutSnapshot writes the snapshot atomically, then its version file.
func (v *FileSystemVault) PutSnapshot(userID string, r io.Reader, size int64, version int64) error {
	if err := v.writeFile(v.snapshotPath(userID), r, size); err != nil {
		return err
	}
	data := strconv.FormatInt(version, 10)
	return v.writeFile(v.versionPath(userID), strings.NewReader(data), int64(len(data)))
}

func (v *FileSystemVault) GetSnapshot(userID string, w io.Writer) error {
	f, err := os.Open(v.snapshotPath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found for user: %s", userID)
		}
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// GetSnapshotVersion returns 0 if no version file exists.
func (v *FileSystemVault) GetSnapshotVersion(userID string) (int64, error) {
	data, err := os.ReadFile(v.versionPath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version file: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup checks that the vault directories exist and are directories.
func (v *FileSystemVault) ValidateSetup() error {
	for _, dir := range []string{v.root, v.snapshotsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("vault directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", dir)
		}
	}
	return nil
}

func (v *FileSystemVault) snapshotPath(userID string) string {
	return filepath.Join(v.snapshotsDir, userID+".db")
}

func (v *FileSystemVault) versionPath(userID string) string {
	return filepath.Join(v.snapshotsDir, userID+".version")
}

// writeFile copies r to destPath via a temp file and rename, so readers
// never see a partial snapshot.
func (v *FileSystemVault) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

var _ journal.Vault = (*FileSystemVault)(nil)
