package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound is returned by Store.Get for keys that were never written.
	ErrNotFound = errors.New("progress: key not found")
	// ErrUnavailable reports that the backing storage cannot be used.
	ErrUnavailable = errors.New("progress: storage unavailable")
)

// Store is a string key-value store in the spirit of browser localStorage.
type Store interface {
	Get(key string) (string, error)
	// SetMany writes every entry in one atomic update: readers observe either
	// all of them or none.
	SetMany(entries map[string]string) error
}

// MemoryStore keeps values in process memory. The zero value is ready to use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
	// Fail, when non-nil, is returned from every call.
	Fail error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return "", m.Fail
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// SetMany stores every entry.
func (m *MemoryStore) SetMany(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if m.data == nil {
		m.data = map[string]string{}
	}
	for k, v := range entries {
		m.data[k] = v
	}
	return nil
}

// FileStore persists every key in a single JSON document. Writes go to a
// temporary file that is renamed over the previous document, so a crash
// leaves either the old or the new contents.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the value stored under key.
func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := doc[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// SetMany merges entries into the document and replaces the file.
func (f *FileStore) SetMany(entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		// A corrupt document is replaced rather than blocking every save.
		if !errors.Is(err, errCorrupt) {
			return err
		}
		doc = map[string]string{}
	}
	for k, v := range entries {
		doc[k] = v
	}
	return f.write(doc)
}

var errCorrupt = errors.New("progress: corrupt store document")

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, f.path, err)
	}
	doc := map[string]string{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errCorrupt, f.path, err)
	}
	return doc, nil
}

func (f *FileStore) write(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("%w: create store directory: %v", ErrUnavailable, err)
	}
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: write temp store: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("%w: replace store: %v", ErrUnavailable, err)
	}
	return nil
}
