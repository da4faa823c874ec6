// Package store persists the harvester's three artifacts: the run state
// checkpoint, the canonical records file, and the derived XLSX snapshot,
// plus a sqlite cache of fetched pages. Loads degrade to safe defaults so a
// corrupt file never kills a run; saves overwrite the whole file.
package store

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/model"
)

// StateStore loads and saves the run-state checkpoint file.
type StateStore struct {
	path string
}

// NewStateStore creates a StateStore over the given file path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load reads the checkpoint. A missing, unreadable, or malformed file yields
// the first-run default, never an error.
func (s *StateStore) Load() *model.RunState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("state file unreadable, starting fresh",
				zap.String("path", s.path), zap.Error(err))
		}
		return model.NewRunState()
	}

	var state model.RunState
	if err := json.Unmarshal(data, &state); err != nil {
		zap.L().Warn("state file corrupt, starting fresh",
			zap.String("path", s.path), zap.Error(err))
		return model.NewRunState()
	}
	if state.StartIndex < 1 {
		state.StartIndex = 1
	}
	if state.ScrapedURLs == nil {
		state.ScrapedURLs = []string{}
	}
	return &state
}

// Save overwrites the checkpoint file.
func (s *StateStore) Save(state *model.RunState) error {
	data, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return eris.Wrap(err, "state: marshal")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return eris.Wrapf(err, "state: write %s", s.path)
	}
	return nil
}
