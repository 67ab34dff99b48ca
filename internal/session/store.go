// Package session persists the last profile a user submitted so later runs
// can start from it. Recommendations are never stored.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spigell/course-finder/internal/profile"
)

// Snapshot is the on-disk form of a saved profile.
type Snapshot struct {
	Profile profile.Profile `json:"profile"`
	SavedAt time.Time       `json:"saved_at"`
}

// Store keeps a single profile snapshot in a JSON file.
type Store struct {
	path string
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{
		path: strings.TrimSpace(path),
		now:  time.Now,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Save overwrites the snapshot with the given profile.
func (s *Store) Save(p profile.Profile) error {
	if s.path == "" {
		return errors.New("session file is not configured")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot{Profile: p, SavedAt: s.now().UTC()}); err != nil {
		return fmt.Errorf("encoding session %q: %w", s.path, err)
	}
	return nil
}

// Load returns the saved profile. A missing or empty file yields nil, nil.
func (s *Store) Load() (*profile.Profile, error) {
	snapshot, err := s.LoadSnapshot()
	if err != nil || snapshot == nil {
		return nil, err
	}
	return &snapshot.Profile, nil
}

// LoadSnapshot is like Load but also reports when the profile was saved.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	if s.path == "" {
		return nil, nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return nil, nil
	}

	var snapshot Snapshot
	if err := json.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding session %q: %w", s.path, err)
	}
	return &snapshot, nil
}
