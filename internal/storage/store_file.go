package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every entry in a single JSON document, rewritten
// atomically (temp file + rename) on each mutation. Writes are
// serialized; readers see the last completed write.
type FileStore struct {
	mu    sync.Mutex
	path  string
	items map[string]json.RawMessage
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		items: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	// A document that no longer parses is discarded wholesale; the app
	// starts from an empty store instead of failing bootstrap.
	if err := json.Unmarshal(data, &s.items); err != nil {
		s.items = make(map[string]json.RawMessage)
	}
	return s, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	_ = ctx
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = payload
	return s.flushLocked()
}

func (s *FileStore) Get(ctx context.Context, key string, out any) (bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, ok := s.items[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		delete(s.items, key)
		_ = s.flushLocked()
		return false, nil
	}
	return true, nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}
	delete(s.items, key)
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
