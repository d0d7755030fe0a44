package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the record as JSON in one file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the save file location.
func (s *FileStore) Path() string { return s.path }

// Save writes to a temporary file in the same directory and renames it over
// the old save, so a crash never leaves a half-written record.
func (s *FileStore) Save(_ context.Context, r Record) error {
	data, err := encode(r)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

// Load reads the save file. A missing file means no data.
func (s *FileStore) Load(_ context.Context) (Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read save file: %w", err)
	}
	r, err := decode(data)
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

// Close does nothing.
func (s *FileStore) Close() error { return nil }
