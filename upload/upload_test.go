package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMemoryStore_UploadRemove(t *testing.T) {
	store := NewMemoryStore(0)
	f, err := store.Upload(context.Background(), "/tmp/photo.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if f.ID == "" {
		t.Fatal("expected an id")
	}
	if !strings.HasPrefix(f.URL, "mem://"+f.ID+"/") || !strings.HasSuffix(f.URL, "photo.png") {
		t.Errorf("unexpected url %q", f.URL)
	}
	if !store.Contains(f.ID) {
		t.Fatal("store does not contain uploaded file")
	}

	if err := store.Remove(context.Background(), f.ID, f.URL); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
	if err := store.Remove(context.Background(), f.ID, f.URL); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Limit(t *testing.T) {
	store := NewMemoryStore(3)
	if _, err := store.Upload(context.Background(), "big.bin", strings.NewReader("abcd")); err == nil {
		t.Fatal("expected size error")
	}
	if _, err := store.Upload(context.Background(), "ok.bin", strings.NewReader("abc")); err != nil {
		t.Fatalf("expected upload within limit, got %v", err)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore(0)
	if _, err := store.Upload(ctx, "a", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("cancelled upload was stored")
	}
}

func TestFuncs(t *testing.T) {
	var removed string
	f := Funcs{
		OnUpload: func(_ context.Context, name string, _ io.Reader) (File, error) {
			return File{ID: "temp-id", URL: "temp-url"}, nil
		},
		OnRemove: func(_ context.Context, id, _ string) error {
			removed = id
			return nil
		},
	}
	got, err := f.Upload(context.Background(), "x", strings.NewReader(""))
	if err != nil || got.ID != "temp-id" {
		t.Fatalf("Upload = %+v, %v", got, err)
	}
	if err := f.Remove(context.Background(), "temp-id", "temp-url"); err != nil || removed != "temp-id" {
		t.Fatalf("Remove: %v removed=%q", err, removed)
	}

	if _, err := (Funcs{}).Upload(context.Background(), "x", nil); err == nil {
		t.Error("expected error without upload callback")
	}
	if err := (Funcs{}).Remove(context.Background(), "x", ""); err != nil {
		t.Errorf("nil OnRemove should be a no-op, got %v", err)
	}
}

func TestAsFilesAndWithout(t *testing.T) {
	raw := []any{
		map[string]any{"id": "1", "url": "mem://1"},
		File{ID: "2", URL: "mem://2"},
	}
	files := AsFiles(raw)
	if len(files) != 2 || files[0].ID != "1" || files[1].ID != "2" {
		t.Fatalf("AsFiles = %+v", files)
	}
	rest := Without(files, "1")
	if len(rest) != 1 || rest[0].ID != "2" {
		t.Errorf("Without = %+v", rest)
	}
	if AsFiles(nil) != nil {
		t.Error("AsFiles(nil) should be nil")
	}
}
