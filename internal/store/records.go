package store

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/model"
)

// RecordStore loads and saves the canonical records file.
type RecordStore struct {
	path string
}

// NewRecordStore creates a RecordStore over the given file path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Load reads the dataset. A missing, unreadable, or malformed file yields an
// empty dataset, never an error.
func (s *RecordStore) Load() []model.Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("records file unreadable, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		zap.L().Warn("records file corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return records
}

// Save overwrites the records file with the full dataset.
func (s *RecordStore) Save(records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return eris.Wrap(err, "records: marshal")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return eris.Wrapf(err, "records: write %s", s.path)
	}
	return nil
}
