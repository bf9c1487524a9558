// Package state records the outcome of the most recent sync run.
// This enables `louskubot status` to report what happened without
// re-reading git history.
package state

import (
	"path/filepath"
	"time"

	"github.com/corrafig/louskubot/internal/storage"
)

// Outcome describes what a single run did to one artifact.
type Outcome struct {
	Changed bool      `json:"changed"`
	Commit  string    `json:"commit,omitempty"`
	Pushed  bool      `json:"pushed"`
	Ran     time.Time `json:"ran"`
	Error   string    `json:"error,omitempty"`
}

// State stores the last recorded outcome per artifact file.
type State struct {
	Artifacts map[string]Outcome `json:"artifacts"`
}

// Path returns the path to the state file inside the storage dir.
func Path() (string, error) {
	dir, err := storage.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// Load reads the state from disk. A missing or corrupted file yields an
// empty state so a broken record never blocks a sync run.
func Load(path string) (*State, error) {
	var s State
	if err := storage.LoadJSON(path, &s); err != nil {
		return &State{}, nil
	}
	return &s, nil
}

// Record stores the outcome for one artifact and saves the state.
func (s *State) Record(path, artifact string, o Outcome) error {
	if s.Artifacts == nil {
		s.Artifacts = make(map[string]Outcome)
	}
	s.Artifacts[artifact] = o
	return storage.SaveJSON(path, s)
}
