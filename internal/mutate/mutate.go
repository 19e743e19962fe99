// Package mutate appends a validated tag block to a markdown file and
// guarantees the file either ends in the new state or is restored to its
// snapshot, never anything in between.
package mutate

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sage-dev/sage/internal/fileutil"
	"github.com/sage-dev/sage/internal/snapshot"
)

// RollbackError reports a failed post-write verification. Restored tells
// whether the snapshot could be written back; when false the file may be
// left corrupted, which callers must surface loudly.
type RollbackError struct {
	Path     string
	Restored bool
	Err      error
}

func (e *RollbackError) Error() string {
	if e.Restored {
		return fmt.Sprintf("post-write verification failed for %s; original content restored", e.Path)
	}
	return fmt.Sprintf("post-write verification failed for %s and restore failed: %v", e.Path, e.Err)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}

// Mutator performs the append-verify-rollback sequence. readBack exists so
// tests can force the verification step to observe a mismatch.
type Mutator struct {
	readBack func(path string) ([]byte, error)
}

func New() *Mutator {
	return &Mutator{readBack: os.ReadFile}
}

// Block renders the trailing tag block, one [[tag]] per line.
func Block(tagSet []string) []byte {
	var buf bytes.Buffer
	for _, tag := range tagSet {
		buf.WriteString("[[")
		buf.WriteString(tag)
		buf.WriteString("]]\n")
	}
	return buf.Bytes()
}

// Append writes snapshot content plus the tag block, re-reads the file, and
// verifies the original content survived as an exact prefix with the block
// appended. Any mismatch or write failure triggers a rollback to the
// snapshot. A newline separator is inserted when the body does not already
// end with one, so the block always lands after the last line.
func (m *Mutator) Append(snap *snapshot.Snapshot, tagSet []string) error {
	if len(tagSet) == 0 {
		return nil
	}

	body := fileutil.EnsureTrailingNewline(string(snap.Content))
	updated := append([]byte(body), Block(tagSet)...)

	mode := snap.Mode
	if mode == 0 {
		mode = 0644
	}
	if err := os.WriteFile(snap.Path, updated, mode); err != nil {
		return m.rollback(snap, fmt.Errorf("write failed: %w", err))
	}

	got, err := m.readBack(snap.Path)
	if err != nil {
		return m.rollback(snap, fmt.Errorf("post-write read failed: %w", err))
	}
	if !bytes.HasPrefix(got, snap.Content) || !bytes.Equal(got, updated) {
		return m.rollback(snap, fmt.Errorf("written content does not match intent"))
	}
	return nil
}

func (m *Mutator) rollback(snap *snapshot.Snapshot, cause error) error {
	if err := snap.Restore(); err != nil {
		return &RollbackError{Path: snap.Path, Restored: false, Err: err}
	}
	return &RollbackError{Path: snap.Path, Restored: true, Err: cause}
}
