// Package library provides the storage contract for a document library and
// the relocation engine that keeps documents in their canonical folders.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/WallySa7/the-library-sub001/internal/atomicfile"
)

// Entry describes one item returned by Storage.List.
type Entry struct {
	Name  string
	IsDir bool
	// ModTime is the file's modification time; it substitutes for absent
	// date-added metadata during a scan.
	ModTime time.Time
}

// Storage is the narrow filesystem contract the core depends on.
// Paths are "/"-separated and relative to the library root.
type Storage interface {
	List(dir string) ([]Entry, error)
	Read(path string) (string, error)
	Write(path, content string) error
	CreateDir(path string) error
	Move(from, to string) error
	Exists(path string) bool
}

// ErrDestinationExists indicates a move or create would overwrite an
// existing file. Callers treat this as an expected conflict, not a fault.
var ErrDestinationExists = fmt.Errorf("destination already exists")

// DirStorage implements Storage over a directory on the local filesystem.
type DirStorage struct {
	root string
}

// NewDirStorage creates a DirStorage rooted at the given directory.
func NewDirStorage(root string) *DirStorage {
	return &DirStorage{root: root}
}

// Root returns the absolute root directory.
func (s *DirStorage) Root() string {
	return s.root
}

// Abs converts a library-relative path to an absolute one.
func (s *DirStorage) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// List returns the entries of a directory. A missing directory is not an
// error; it simply has no entries.
func (s *DirStorage) List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.Abs(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry := Entry{Name: de.Name(), IsDir: de.IsDir()}
		if info, err := de.Info(); err == nil {
			entry.ModTime = info.ModTime()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Read returns the content of a file.
func (s *DirStorage) Read(path string) (string, error) {
	data, err := os.ReadFile(s.Abs(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write writes a file atomically, creating parent directories as needed.
func (s *DirStorage) Write(path, content string) error {
	abs := s.Abs(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	return atomicfile.WriteFile(abs, []byte(content), 0)
}

// CreateDir creates a directory and any missing parents.
func (s *DirStorage) CreateDir(path string) error {
	return os.MkdirAll(s.Abs(path), 0755)
}

// Move renames a file. It fails closed when the destination already
// exists: no overwrite, and the source is left in place.
func (s *DirStorage) Move(from, to string) error {
	dest := s.Abs(to)
	if _, err := os.Stat(dest); err == nil {
		return ErrDestinationExists
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.Rename(s.Abs(from), dest)
}

// Exists reports whether a file or directory exists.
func (s *DirStorage) Exists(path string) bool {
	_, err := os.Stat(s.Abs(path))
	return err == nil
}
