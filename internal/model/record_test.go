package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalRendersSentinel(t *testing.T) {
	rec := Record{Name: "Best Bites", Website: "https://bestbites.lk"}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Best Bites","website":"https://bestbites.lk","email":"-","phone":"-"}`, string(data))
}

func TestRecord_MarshalJoinsValues(t *testing.T) {
	rec := Record{
		Name:    "Best Bites",
		Website: "https://bestbites.lk",
		Emails:  []string{"a@b.lk", "c@d.lk"},
		Phones:  []string{"0112 345 678"},
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email":"a@b.lk, c@d.lk"`)
	assert.Contains(t, string(data), `"phone":"0112 345 678"`)
}

func TestRecord_UnmarshalParsesSentinelAsAbsent(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","website":"https://x.lk","email":"-","phone":"-"}`), &rec))
	assert.False(t, rec.HasEmail())
	assert.False(t, rec.HasPhone())
	assert.Equal(t, "-", rec.Email())
}

func TestRecord_UnmarshalSplitsJoinedValues(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"name":"X","website":"https://x.lk","email":"a@b.lk, c@d.lk","phone":"123 4567"}`), &rec))
	assert.Equal(t, []string{"a@b.lk", "c@d.lk"}, rec.Emails)
	assert.Equal(t, []string{"123 4567"}, rec.Phones)
}

func TestRunState_SeenAndMarkScraped(t *testing.T) {
	s := NewRunState()
	assert.Equal(t, 1, s.StartIndex)
	assert.False(t, s.Seen("https://x.lk"))

	s.MarkScraped("https://x.lk")
	assert.True(t, s.Seen("https://x.lk"))

	// Marking again must not duplicate.
	s.MarkScraped("https://x.lk")
	assert.Len(t, s.ScrapedURLs, 1)
}

func TestRunState_Advance(t *testing.T) {
	s := NewRunState()
	s.Advance(10)
	s.Advance(10)
	assert.Equal(t, 21, s.StartIndex)
}
