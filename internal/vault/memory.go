package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"journal-go/internal/journal"
)

// MemoryVault keeps snapshots in memory. Safe for concurrent use.
type MemoryVault struct {
	name      string
	snapshots map[string][]byte // userID -> snapshot
	versions  map[string]int64  // userID -> version
	mu        sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:      name,
		snapshots: make(map[string][]byte),
		versions:  make(map[string]int64),
	}
}

// PutSnapshot replaces the user's snapshot and version.
func (m *MemoryVault) PutSnapshot(userID string, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[userID] = data
	m.versions[userID] = version
	return nil
}

func (m *MemoryVault) GetSnapshot(userID string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[userID]
	if !ok {
		return fmt.Errorf("snapshot not found for user: %s", userID)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (m *MemoryVault) GetSnapshotVersion(userID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.versions[userID], nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

var _ journal.Vault = (*MemoryVault)(nil)
