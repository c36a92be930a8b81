package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection is a durable list of records backed by a single indented JSON
// file. The whole file is read once at open and rewritten wholesale on every
// mutation; a mutex serializes each load-mutate-rewrite cycle so a reader can
// never observe a half-written file.
type Collection[T any] struct {
	path  string
	mu    sync.Mutex
	items []T
}

// Open loads the collection from path. A missing file is an empty collection,
// not an error.
func Open[T any](path string) (*Collection[T], error) {
	c := &Collection[T]{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("jsonstore: read %s: %w", path, err)
	}

	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, fmt.Errorf("jsonstore: decode %s: %w", path, err)
	}
	return c, nil
}

// Path returns the backing file path.
func (c *Collection[T]) Path() string {
	return c.path
}

// Snapshot returns a copy of the current records.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the current record count.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Mutate runs fn on the current records under the collection lock and persists
// whatever slice fn returns. If fn or the write fails, the in-memory records
// are left untouched.
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	working := make([]T, len(c.items))
	copy(working, c.items)

	next, err := fn(working)
	if err != nil {
		return err
	}

	if err := c.write(next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// write serializes items to a temp file in the same directory and renames it
// over the target, so the file on disk is always a complete document.
func (c *Collection[T]) write(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonstore: encode %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonstore: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonstore: temp file for %s: %w", c.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonstore: write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonstore: close %s: %w", c.path, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonstore: rename %s: %w", c.path, err)
	}
	return nil
}
