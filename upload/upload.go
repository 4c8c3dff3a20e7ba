// Package upload defines file descriptors and the callbacks that attach and
// detach files for the drop-zone widget.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/devshahoriar/custom-form/util"
)

// ErrNotFound is returned when removing an unknown descriptor.
var ErrNotFound = errors.New("upload: file not found")

// File identifies an uploaded asset.
type File struct {
	ID  string `json:"id" yaml:"id"`
	URL string `json:"url" yaml:"url"`
}

// Uploader attaches and detaches files.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (File, error)
	Remove(ctx context.Context, id, url string) error
}

// Funcs adapts a pair of callbacks to Uploader. A nil OnRemove is a no-op.
type Funcs struct {
	OnUpload func(ctx context.Context, name string, r io.Reader) (File, error)
	OnRemove func(ctx context.Context, id, url string) error
}

// Upload calls OnUpload.
func (f Funcs) Upload(ctx context.Context, name string, r io.Reader) (File, error) {
	if f.OnUpload == nil {
		return File{}, fmt.Errorf("upload %q: no upload callback configured", name)
	}
	return f.OnUpload(ctx, name, r)
}

// Remove calls OnRemove.
func (f Funcs) Remove(ctx context.Context, id, url string) error {
	if f.OnRemove == nil {
		return nil
	}
	return f.OnRemove(ctx, id, url)
}

// MemoryStore keeps uploaded bytes in memory for the lifetime of the
// process. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
	limit int64
}

// NewMemoryStore creates a store rejecting files larger than limit bytes.
// A limit <= 0 disables the check.
func NewMemoryStore(limit int64) *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte), limit: limit}
}

// Upload reads r fully and returns a descriptor with a mem:// URL.
func (m *MemoryStore) Upload(ctx context.Context, name string, r io.Reader) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	var buf bytes.Buffer
	src := r
	if m.limit > 0 {
		src = io.LimitReader(r, m.limit+1)
	}
	if _, err := io.Copy(&buf, src); err != nil {
		return File{}, fmt.Errorf("reading %q: %w", name, err)
	}
	if m.limit > 0 && int64(buf.Len()) > m.limit {
		return File{}, fmt.Errorf("file %q exceeds %d bytes", name, m.limit)
	}
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.files[id] = buf.Bytes()
	m.mu.Unlock()

	return File{ID: id, URL: "mem://" + id + "/" + util.SafeFileName(name)}, nil
}

// Remove forgets the file with the given id.
func (m *MemoryStore) Remove(ctx context.Context, id, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.files, id)
	return nil
}

// Len returns the number of stored files.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// Contains reports whether id is stored.
func (m *MemoryStore) Contains(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[id]
	return ok
}

// Without returns files minus the descriptor with id, preserving order.
func Without(files []File, id string) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// AsFiles converts a value-tree node to a descriptor slice. It accepts
// []File, a single File, and the []any / map[string]any shapes produced by
// decoding YAML or JSON.
func AsFiles(v any) []File {
	switch x := v.(type) {
	case nil:
		return nil
	case []File:
		return x
	case File:
		return []File{x}
	case []any:
		out := make([]File, 0, len(x))
		for _, e := range x {
			out = append(out, AsFiles(e)...)
		}
		return out
	case map[string]any:
		id, _ := x["id"].(string)
		url, _ := x["url"].(string)
		return []File{{ID: id, URL: url}}
	default:
		return nil
	}
}
