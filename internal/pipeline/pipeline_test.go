package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/directory-cli/internal/model"
	"github.com/sells-group/directory-cli/internal/scrape"
	"github.com/sells-group/directory-cli/internal/store"
	"github.com/sells-group/directory-cli/pkg/google"
	"github.com/sells-group/directory-cli/pkg/google/mocks"
)

type testEnv struct {
	pipeline *Pipeline
	search   *mocks.MockClient
	states   *store.StateStore
	records  *store.RecordStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	search := &mocks.MockClient{}
	states := store.NewStateStore(filepath.Join(dir, "state.json"))
	records := store.NewRecordStore(filepath.Join(dir, "records.json"))

	p := New(Options{
		Query:        "restaurant contact",
		PageSize:     10,
		Search:       search,
		Fetcher:      scrape.NewFetcher(scrape.Options{}),
		States:       states,
		Records:      records,
		WorkbookPath: filepath.Join(dir, "out.xlsx"),
	})
	return &testEnv{pipeline: p, search: search, states: states, records: records}
}

func TestHarvest_BuildsRecordsFromSnippets(t *testing.T) {
	env := newTestEnv(t)
	env.search.On("Search", mock.Anything, "restaurant contact", 1).Return(&google.SearchResponse{
		TotalResults: "97",
		Items: []google.Result{
			{Title: "Best Bites | Contact", Snippet: "reach us at Info@BestBites.lk or 0112 345 678", Link: "https://bestbites.lk"},
		},
	}, nil)

	summary, err := env.pipeline.Harvest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.New)
	assert.Equal(t, 1, summary.Total)

	records := env.records.Load()
	require.Len(t, records, 1)
	assert.Equal(t, "Best Bites", records[0].Name)
	assert.Equal(t, []string{"info@bestbites.lk"}, records[0].Emails)
	assert.Equal(t, []string{"0112 345 678"}, records[0].Phones)

	state := env.states.Load()
	assert.Equal(t, 11, state.StartIndex)
	assert.True(t, state.Seen("https://bestbites.lk"))
}

func TestHarvest_ScrapesPageWhenSnippetHasNoEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><footer>Contact: hello@spicegarden.lk</footer></body></html>`))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	env.search.On("Search", mock.Anything, mock.Anything, 1).Return(&google.SearchResponse{
		Items: []google.Result{
			{Title: "Spice Garden", Snippet: "best curry in town", Link: srv.URL + "/contact"},
		},
	}, nil)

	_, err := env.pipeline.Harvest(context.Background())
	require.NoError(t, err)

	records := env.records.Load()
	require.Len(t, records, 1)
	assert.Equal(t, []string{"hello@spicegarden.lk"}, records[0].Emails)
}

func TestHarvest_SkipsSeenAndInvalidLinks(t *testing.T) {
	env := newTestEnv(t)

	state := model.NewRunState()
	state.MarkScraped("https://seen.lk")
	require.NoError(t, env.states.Save(state))

	env.search.On("Search", mock.Anything, mock.Anything, 1).Return(&google.SearchResponse{
		Items: []google.Result{
			{Title: "Seen", Snippet: "a@b.lk", Link: "https://seen.lk"},
			{Title: "Bad", Snippet: "c@d.lk", Link: "ftp://bad.lk"},
		},
	}, nil)

	summary, err := env.pipeline.Harvest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.New)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Invalid)

	// The offset still advances by the page size.
	assert.Equal(t, 11, env.states.Load().StartIndex)
	assert.Empty(t, env.records.Load())
}

func TestHarvest_SearchFailureTreatedAsEmptyPage(t *testing.T) {
	env := newTestEnv(t)
	env.search.On("Search", mock.Anything, mock.Anything, 1).
		Return(nil, eris.New("google: unexpected status 500"))

	summary, err := env.pipeline.Harvest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.New)
	assert.Equal(t, 11, env.states.Load().StartIndex)
}

func TestHarvest_InvalidArgumentIsFatal(t *testing.T) {
	env := newTestEnv(t)
	env.search.On("Search", mock.Anything, mock.Anything, 1).
		Return(nil, eris.Wrap(google.ErrInvalidArgument, "start 101 outside [1,100]"))

	_, err := env.pipeline.Harvest(context.Background())
	require.Error(t, err)
	assert.True(t, eris.Is(err, google.ErrInvalidArgument))
}

func TestHarvest_AppendsAcrossRuns(t *testing.T) {
	env := newTestEnv(t)
	env.search.On("Search", mock.Anything, mock.Anything, 1).Return(&google.SearchResponse{
		Items: []google.Result{{Title: "A", Snippet: "a@b.lk", Link: "https://a.lk"}},
	}, nil).Once()
	env.search.On("Search", mock.Anything, mock.Anything, 11).Return(&google.SearchResponse{
		Items: []google.Result{{Title: "B", Snippet: "b@c.lk", Link: "https://b.lk"}},
	}, nil).Once()

	_, err := env.pipeline.Harvest(context.Background())
	require.NoError(t, err)
	summary, err := env.pipeline.Harvest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 21, env.states.Load().StartIndex)
}
