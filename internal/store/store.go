// Package store persists the study document as a single JSON file.
// Load substitutes an empty document for anything unreadable; Save is a
// whole-document overwrite through a temp file rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store reads and writes the study document at a fixed path.
type Store struct {
	path string
}

// Open creates a Store for the file at path, ensuring its parent
// directory exists.
func Open(path string) (*Store, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing, unreadable, corrupt, or
// schema-invalid file yields a fresh empty document rather than an
// error; the old file is only replaced on the next Save.
func (s *Store) Load() *Document {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return NewDocument()
	}
	if err := validateDocument(raw); err != nil {
		return NewDocument()
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return NewDocument()
	}
	doc.ensureCollections()
	return &doc
}

// Save atomically overwrites the document file.
func (s *Store) Save(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// Reset deletes the document file. A missing file is not an error.
func (s *Store) Reset() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove document: %w", err)
	}
	return nil
}

// DefaultDataPath resolves the document file path in priority order:
// 1. STUDYQUEST_DATA environment variable
// 2. $XDG_DATA_HOME/studyquest/studyquest.json
// 3. ~/.local/share/studyquest/studyquest.json
func DefaultDataPath() (string, error) {
	if p := os.Getenv("STUDYQUEST_DATA"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "studyquest", "studyquest.json"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
