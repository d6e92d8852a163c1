package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON document file per scope under a root directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated document behind.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed and returns a store
// backed by it.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("store root path must not be empty")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store root: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) Get(scope string) (string, bool, error) {
	data, err := os.ReadFile(s.scopePath(scope))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read scope file: %w", err)
	}
	return string(data), true, nil
}

func (s *FileStore) Put(scope string, doc string) error {
	target := s.scopePath(scope)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o600); err != nil {
		return fmt.Errorf("failed to write scope file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace scope file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(scope string) error {
	err := os.Remove(s.scopePath(scope))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete scope file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// scopePath maps a scope key to a file name. Scope keys are caller-supplied
// strings, so anything that is not filename-safe is hashed instead.
func (s *FileStore) scopePath(scope string) string {
	name := scope
	if name == "" || strings.ContainsAny(name, "/\\:*?\"<>| ") {
		sum := sha256.Sum256([]byte(scope))
		name = hex.EncodeToString(sum[:8])
	}
	return filepath.Join(s.root, name+".json")
}
