package model

// RunState is the resumability checkpoint between harvest runs: the next
// search offset plus every URL already turned into a record.
type RunState struct {
	StartIndex  int      `json:"start_index"`
	ScrapedURLs []string `json:"scraped_urls"`

	seen map[string]struct{}
}

// NewRunState returns the state used on a first run.
func NewRunState() *RunState {
	return &RunState{StartIndex: 1, ScrapedURLs: []string{}}
}

// Seen reports whether the URL was already processed in this or a prior run.
func (s *RunState) Seen(url string) bool {
	if s.seen == nil {
		s.index()
	}
	_, ok := s.seen[url]
	return ok
}

// MarkScraped records the URL as processed. The set only grows.
func (s *RunState) MarkScraped(url string) {
	if s.Seen(url) {
		return
	}
	s.ScrapedURLs = append(s.ScrapedURLs, url)
	s.seen[url] = struct{}{}
}

// Advance moves the offset past the page that was just requested.
func (s *RunState) Advance(pageSize int) {
	s.StartIndex += pageSize
}

func (s *RunState) index() {
	s.seen = make(map[string]struct{}, len(s.ScrapedURLs))
	for _, u := range s.ScrapedURLs {
		s.seen[u] = struct{}{}
	}
}
