// Package disk implements the durable file tier: plain files under a
// configured root with automatic parent-directory creation.
package disk

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when the requested file does not exist.
var ErrNotFound = errors.New("disk: file not found")

// Store reads and writes files relative to a root directory.
type Store struct {
	root   string
	logger *slog.Logger
}

// New constructs a Store rooted at dir. The directory is created on first
// write, not here, so a misconfigured path surfaces where it is used.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{root: dir, logger: logger}
}

// Root returns the configured root directory.
func (s *Store) Root() string {
	return s.root
}

// Write stores data at the given relative path, creating parents as needed.
func (s *Store) Write(path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("disk mkdir for %q: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("disk write %q: %w", path, err)
	}
	return nil
}

// Append appends data to the file at path, creating it (and parents) if
// missing. Used by the append-only event logs.
func (s *Store) Append(path string, data []byte) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("disk mkdir for %q: %w", path, err)
	}
	f, err := os.OpenFile(full, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("disk open %q: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("disk append %q: %w", path, err)
	}
	return nil
}

// Read returns the contents of the file at path, or ErrNotFound.
func (s *Store) Read(path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("disk read %q: %w", path, err)
	}
	return data, nil
}

// Delete removes the file at path. Returns ErrNotFound for an absent file.
func (s *Store) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("disk delete %q: %w", path, err)
	}
	return nil
}

// Exists reports whether a file is present at path.
func (s *Store) Exists(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(full)
	return statErr == nil
}

// List returns the file names directly under the given relative directory.
// An absent directory yields an empty list.
func (s *Store) List(dir string) ([]string, error) {
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("disk list %q: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// resolve joins path to the root and rejects traversal outside it.
func (s *Store) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", fmt.Errorf("disk: path %q escapes root", path)
	}
	return full, nil
}
