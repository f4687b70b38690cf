package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

func TestDiskStore_WriteRead(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	if err := store.Write("1700000000-abc.pdf", []byte("hello")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := store.Read("1700000000-abc.pdf")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", data)
	}
}

func TestDiskStore_CreatesDirOnFirstWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewDiskStore(dir)

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("directory must not exist before first write")
	}
	if err := store.Write("a.txt", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory must exist after write: %v", err)
	}
	// Second write must not fail on the existing directory.
	if err := store.Write("b.txt", []byte("y")); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
}

func TestDiskStore_ReadMissing(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	if _, err := store.Read("nope.txt"); err != domain.ErrFileMissing {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}
}

func TestDiskStore_RemoveAbsent(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	if err := store.Remove("never-existed.txt"); err != nil {
		t.Fatalf("removing an absent blob must not error: %v", err)
	}
}

func TestDiskStore_ListAbsentDir(t *testing.T) {
	store := NewDiskStore(filepath.Join(t.TempDir(), "never-created"))

	blobs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(blobs) != 0 {
		t.Fatalf("expected empty listing, got %d", len(blobs))
	}
}

func TestDiskStore_PathEscapeStripped(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	if err := store.Write("../escape.txt", []byte("x")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.txt")); err != nil {
		t.Fatalf("blob must land inside the store dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "..", "escape.txt")); err == nil {
		t.Fatal("blob must not escape the store dir")
	}
}
