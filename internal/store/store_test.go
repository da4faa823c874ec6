package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/directory-cli/internal/model"
)

func TestStateStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewStateStore(path)

	state := model.NewRunState()
	state.MarkScraped("https://a.lk")
	state.MarkScraped("https://b.lk")
	state.Advance(10)
	require.NoError(t, s.Save(state))

	loaded := s.Load()
	assert.Equal(t, 11, loaded.StartIndex)
	assert.Equal(t, []string{"https://a.lk", "https://b.lk"}, loaded.ScrapedURLs)
	assert.True(t, loaded.Seen("https://a.lk"))
}

func TestStateStore_MissingFileYieldsDefault(t *testing.T) {
	s := NewStateStore(filepath.Join(t.TempDir(), "absent.json"))
	state := s.Load()
	assert.Equal(t, 1, state.StartIndex)
	assert.Empty(t, state.ScrapedURLs)
}

func TestStateStore_CorruptFileYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	state := NewStateStore(path).Load()
	assert.Equal(t, 1, state.StartIndex)
	assert.Empty(t, state.ScrapedURLs)
}

func TestStateStore_RepairsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"start_index":0,"scraped_urls":null}`), 0o644))

	state := NewStateStore(path).Load()
	assert.Equal(t, 1, state.StartIndex)
	assert.NotNil(t, state.ScrapedURLs)
}

func TestRecordStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	s := NewRecordStore(path)

	records := []model.Record{
		{Name: "Best Bites", Website: "https://bestbites.lk", Emails: []string{"a@b.lk"}},
		{Name: "Spice Garden", Website: "https://spicegarden.lk"},
	}
	require.NoError(t, s.Save(records))

	loaded := s.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, "Best Bites", loaded[0].Name)
	assert.Equal(t, []string{"a@b.lk"}, loaded[0].Emails)
	assert.False(t, loaded[1].HasEmail())
}

func TestRecordStore_MissingAndCorruptYieldEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, NewRecordStore(filepath.Join(dir, "absent.json")).Load())

	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))
	assert.Empty(t, NewRecordStore(path).Load())
}

func TestRecordStore_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, NewRecordStore(path).Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
