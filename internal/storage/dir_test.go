package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirStore_RoundTrip(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	payload := []byte("hello world")
	if err := store.Write(context.Background(), "greeting.txt", payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read(context.Background(), "greeting.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Expected %q, got %q", payload, got)
	}
}

func TestDirStore_Overwrite(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Write(ctx, "f", []byte("first")); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := store.Write(ctx, "f", []byte("second")); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, err := store.Read(ctx, "f")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("Expected overwrite to win, got %q", got)
	}
}

func TestDirStore_ReadMissing(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	_, err = store.Read(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDirStore_WriteCreateFailure(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	// A name pointing into a directory that does not exist cannot be created.
	err = store.Write(context.Background(), "no-such-dir/f", []byte("x"))
	if !errors.Is(err, ErrCreateFailed) {
		t.Errorf("Expected ErrCreateFailed, got %v", err)
	}
}

func TestDirStore_EmptyPayload(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	ctx := context.Background()
	if err := store.Write(ctx, "empty", nil); err != nil {
		t.Fatalf("Write of empty payload failed: %v", err)
	}

	got, err := store.Read(ctx, "empty")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty content, got %d bytes", len(got))
	}
}

func TestDirStore_List(t *testing.T) {
	root := t.TempDir()
	store, err := NewDirStore(root)
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	ctx := context.Background()
	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("Expected empty listing, got %v", names)
	}

	for _, name := range []string{"a.txt", "b.txt"} {
		if err := store.Write(ctx, name, []byte(name)); err != nil {
			t.Fatalf("Write %s failed: %v", name, err)
		}
	}

	// Subdirectories are not storage entries.
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	names, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 entries, got %v", names)
	}

	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["a.txt"] || !seen["b.txt"] {
		t.Errorf("Listing missing uploaded names: %v", names)
	}
}

func TestDirStore_ListMissingRoot(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}

	if err := os.RemoveAll(store.Root()); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	if _, err := store.List(context.Background()); err == nil {
		t.Error("Expected error when root is gone, got nil")
	}
}
