package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Snapshot captures a file's content before mutation so the caller can
// verify it later and restore it byte-for-byte if a write goes wrong.
type Snapshot struct {
	Path    string
	Content []byte
	Hash    string
	Mode    os.FileMode
}

// IntegrityError reports that a file no longer matches its snapshot.
type IntegrityError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("content of %s changed since snapshot (expected %s, got %s)", e.Path, e.Expected, e.Actual)
}

// Take reads the file at path and captures its content, hash, and mode.
func Take(path string) (*Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Snapshot{
		Path:    path,
		Content: content,
		Hash:    Hash(content),
		Mode:    info.Mode().Perm(),
	}, nil
}

// Hash returns a short hex sha256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}

// Verify re-reads the file and returns an IntegrityError when its current
// content no longer hashes to the snapshot's hash.
func (s *Snapshot) Verify() error {
	current, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("failed to re-read %s: %w", s.Path, err)
	}
	actual := Hash(current)
	if actual != s.Hash {
		return &IntegrityError{Path: s.Path, Expected: s.Hash, Actual: actual}
	}
	return nil
}

// Restore writes the snapshot content back verbatim.
func (s *Snapshot) Restore() error {
	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(s.Path, s.Content, mode); err != nil {
		return fmt.Errorf("failed to restore %s: %w", s.Path, err)
	}
	return nil
}
