// Package storage implements the on-disk blob store behind the file
// storage manager, plus the reconciliation sweep that removes blobs no
// file record references.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

// DiskStore keeps blobs as flat files in a single configured directory.
// The directory is created lazily on first write; creation is idempotent.
type DiskStore struct {
	dir string
}

// NewDiskStore returns a store rooted at dir. The directory is injected
// configuration so tests can point it at a scratch location.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Dir returns the configured uploads directory.
func (s *DiskStore) Dir() string { return s.dir }

// Write persists data under name. Name is always a generated storage
// name; Base strips anything path-like as a second line of defense.
func (s *DiskStore) Write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Read returns the blob's bytes. A record that exists in the database
// but has no blob on disk reports domain.ErrFileMissing.
func (s *DiskStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFileMissing
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// Remove deletes a blob. Removing an absent blob is not an error.
func (s *DiskStore) Remove(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// BlobInfo describes one stored blob for the sweeper.
type BlobInfo struct {
	Name    string
	ModTime time.Time
}

// List enumerates the blobs currently on disk. A store whose directory
// was never created lists as empty.
func (s *DiskStore) List() ([]BlobInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	out := make([]BlobInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BlobInfo{Name: e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}

func (s *DiskStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
