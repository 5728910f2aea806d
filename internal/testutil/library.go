// Package testutil provides helpers for tests that need a real library
// directory on disk.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLibrary is a temporary library directory for tests.
type TestLibrary struct {
	t    *testing.T
	Path string
}

// NewLibrary creates an empty library in a temp directory.
func NewLibrary(t *testing.T) *TestLibrary {
	t.Helper()
	return &TestLibrary{t: t, Path: t.TempDir()}
}

// WriteDoc writes a document at a library-relative path, creating parent
// directories.
func (l *TestLibrary) WriteDoc(relPath, content string) {
	l.t.Helper()
	fullPath := filepath.Join(l.Path, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		l.t.Fatalf("failed to create dir for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		l.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadFile reads a library-relative file.
func (l *TestLibrary) ReadFile(relPath string) string {
	l.t.Helper()
	data, err := os.ReadFile(filepath.Join(l.Path, filepath.FromSlash(relPath)))
	if err != nil {
		l.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}

// AssertFileExists fails the test if the file does not exist.
func (l *TestLibrary) AssertFileExists(relPath string) {
	l.t.Helper()
	if _, err := os.Stat(filepath.Join(l.Path, filepath.FromSlash(relPath))); os.IsNotExist(err) {
		l.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (l *TestLibrary) AssertFileNotExists(relPath string) {
	l.t.Helper()
	if _, err := os.Stat(filepath.Join(l.Path, filepath.FromSlash(relPath))); err == nil {
		l.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain substr.
func (l *TestLibrary) AssertFileContains(relPath, substr string) {
	l.t.Helper()
	content := l.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		l.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}
