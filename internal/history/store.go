// Package history records past submissions in a local state file so a later
// `smartfill status` can re-check the most recent execution without the user
// keeping the ARN around.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// keep bounds the state file; older submissions fall off the end.
const keep = 50

// Entry is one recorded submission.
type Entry struct {
	SessionID    string    `json:"session_id"`
	ExecutionARN string    `json:"execution_arn"`
	StartedAt    time.Time `json:"started_at"`
	Status       string    `json:"status"`
}

// ReadWriter is the history access consumed by the CLI. The concrete Store is
// file-backed; tests substitute a fake.
type ReadWriter interface {
	Append(e Entry) error
	Latest() (Entry, bool, error)
	UpdateStatus(arn, status string) error
}

// Store persists entries as a JSON array in a single file.
type Store struct {
	path string
}

// New creates a Store at the given file path.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history: path must not be empty")
	}
	return &Store{path: path}, nil
}

// DefaultPath returns the per-user state file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("history: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", "smartfill", "sessions.json"), nil
}

// Append records a new submission, newest first.
func (s *Store) Append(e Entry) error {
	entries := s.load()
	entries = append([]Entry{e}, entries...)
	if len(entries) > keep {
		entries = entries[:keep]
	}
	return s.save(entries)
}

// Latest returns the most recent entry, or false when there is no history.
func (s *Store) Latest() (Entry, bool, error) {
	entries := s.load()
	if len(entries) == 0 {
		return Entry{}, false, nil
	}
	return entries[0], true, nil
}

// UpdateStatus rewrites the recorded status for the entry with the given
// execution ARN. Unknown ARNs are ignored.
func (s *Store) UpdateStatus(arn, status string) error {
	entries := s.load()
	changed := false
	for i := range entries {
		if entries[i].ExecutionARN == arn {
			entries[i].Status = status
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(entries)
}

// load reads the state file. A missing or corrupt file degrades to empty
// history rather than an error; history is a convenience, not a source of
// truth.
func (s *Store) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("history: create state dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("history: encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("history: write state file: %w", err)
	}
	return nil
}
