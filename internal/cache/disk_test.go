package cache

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"stash/internal/models"
)

func TestDiskPutGetDelete(t *testing.T) {
	store, err := NewDisk(t.TempDir(), Limits{})
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	ctx := context.Background()

	record, err := store.Put(ctx, PutRequest{
		OriginalName: "report.pdf",
		ContentType:  "application/pdf",
		Category:     models.CategoryDocument,
		Data:         []byte("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, rc, err := store.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("expected pdf bytes, got %q", data)
	}
	if got.ContentType != "application/pdf" || got.Category != models.CategoryDocument {
		t.Fatalf("unexpected record: %#v", got)
	}

	existed, err := store.Delete(ctx, record.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Fatal("expected delete to report existing record")
	}
	if _, _, err := store.Get(ctx, record.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDiskClearRemovesFiles(t *testing.T) {
	root := t.TempDir()
	store, err := NewDisk(root, Limits{})
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := store.Put(ctx, PutRequest{
			OriginalName: name,
			ContentType:  "text/plain",
			Category:     models.CategoryDocument,
			Data:         []byte(name),
		}); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}

	count, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 removed, got %d", count)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty root after clear, found %d entries", len(entries))
	}
}

func TestDiskSweepsStaleFilesOnOpen(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "stale-file"), []byte("leftover"), 0o644); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	store, err := NewDisk(root, Limits{})
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "stale-file")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected stale file to be swept")
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Count != 0 {
		t.Fatalf("expected empty store after open, got %d", stats.Count)
	}
}

func TestDiskCapacity(t *testing.T) {
	store, err := NewDisk(t.TempDir(), Limits{MaxEntries: 1})
	if err != nil {
		t.Fatalf("new disk store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, PutRequest{
		OriginalName: "a.txt",
		ContentType:  "text/plain",
		Category:     models.CategoryDocument,
		Data:         []byte("a"),
	}); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if _, err := store.Put(ctx, PutRequest{
		OriginalName: "b.txt",
		ContentType:  "text/plain",
		Category:     models.CategoryDocument,
		Data:         []byte("b"),
	}); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}
