package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/customsearch/v1"
	defaultPageSize = 10

	// The Custom Search JSON API rejects offsets past 100.
	minStart = 1
	maxStart = 100
)

// ErrInvalidArgument marks a request the API would never accept: a too-short
// query or an out-of-range start offset. Unlike transport failures this is
// not recoverable by retrying the same page.
var ErrInvalidArgument = eris.New("google: invalid argument")

// Client performs Google Custom Search operations.
type Client interface {
	Search(ctx context.Context, query string, start int) (*SearchResponse, error)
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Items        []Result
	TotalResults string
}

// Result is a single ranked search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithPageSize overrides the default page size (the API caps it at 10).
func WithPageSize(n int) Option {
	return func(c *httpClient) {
		if n > 0 && n <= defaultPageSize {
			c.pageSize = n
		}
	}
}

type httpClient struct {
	apiKey   string
	engineID string
	baseURL  string
	pageSize int
	http     *http.Client
}

// NewClient creates a Custom Search API client for the given key and
// programmable search engine id.
func NewClient(apiKey, engineID string, opts ...Option) Client {
	c := &httpClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultBaseURL,
		pageSize: defaultPageSize,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// apiResponse is the subset of the Custom Search payload we consume.
type apiResponse struct {
	Items             []Result `json:"items"`
	SearchInformation struct {
		TotalResults string `json:"totalResults"`
	} `json:"searchInformation"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *httpClient) Search(ctx context.Context, query string, start int) (*SearchResponse, error) {
	if utf8.RuneCountInString(query) < 3 {
		return nil, eris.Wrapf(ErrInvalidArgument, "query %q too short", query)
	}
	if start < minStart || start > maxStart {
		return nil, eris.Wrapf(ErrInvalidArgument, "start %d outside [%d,%d]", start, minStart, maxStart)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(c.pageSize))
	params.Set("start", strconv.Itoa(start))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "google: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "google: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "google: read response")
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "google: unmarshal response")
	}

	if result.Error != nil {
		return nil, eris.Errorf("google: api error %d: %s", result.Error.Code, result.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("google: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return &SearchResponse{
		Items:        result.Items,
		TotalResults: result.SearchInformation.TotalResults,
	}, nil
}
