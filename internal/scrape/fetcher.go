// Package scrape fetches target web pages and reduces them to a bounded text
// excerpt around contact information. Every failure mode returns an empty
// excerpt: callers treat "" as "no signal", never as an error.
package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/directory-cli/internal/extract"
	"github.com/sells-group/directory-cli/internal/store"
)

const (
	// maxSections caps how many contact-looking blocks feed the excerpt.
	maxSections = 3
	// fallbackChars caps the whole-page fallback excerpt.
	fallbackChars = 5000

	maxBodyBytes = 512 * 1024

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var contactRe = regexp.MustCompile(`(?i)contact|email|phone`)

// Options configures a Fetcher.
type Options struct {
	Timeout time.Duration
	// RequestsPerSec throttles live fetches. Zero means unthrottled.
	RequestsPerSec float64
	// Cache, when set, is consulted before any live fetch.
	Cache    *store.PageCache
	CacheTTL time.Duration
}

// Fetcher retrieves pages with a single bounded-timeout GET per URL.
type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	cache    *store.PageCache
	cacheTTL time.Duration
}

// NewFetcher creates a Fetcher with sensible connection defaults.
func NewFetcher(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
			},
		},
		limiter:  limiter,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// Excerpt fetches a URL and returns the contact-relevant text window, or ""
// on any failure (invalid URL, transport error, non-2xx, non-HTML body).
func (f *Fetcher) Excerpt(ctx context.Context, targetURL string) string {
	if !extract.ValidateURL(targetURL) {
		return ""
	}

	if f.cache != nil {
		if excerpt, ok := f.cache.Get(ctx, targetURL); ok {
			return excerpt
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return ""
		}
	}

	body, ok := f.get(ctx, targetURL)
	if !ok {
		return ""
	}

	excerpt := ContactExcerpt(body)
	if excerpt == "" {
		return ""
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, targetURL, excerpt, f.cacheTTL); err != nil {
			zap.L().Warn("page cache write failed",
				zap.String("url", targetURL), zap.Error(err))
		}
	}
	return excerpt
}

// get performs the single GET and enforces status and content-type checks.
func (f *Fetcher) get(ctx context.Context, targetURL string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		zap.L().Debug("page fetch failed", zap.String("url", targetURL), zap.Error(err))
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Debug("page fetch non-2xx",
			zap.String("url", targetURL), zap.Int("status", resp.StatusCode))
		return nil, false
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "text/html") {
		zap.L().Debug("page fetch unsupported content type",
			zap.String("url", targetURL), zap.String("content_type", ct))
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, false
	}
	return body, true
}

// ContactExcerpt reduces an HTML document to the text of at most the first
// three block elements mentioning contact/email/phone, falling back to the
// first 5000 characters of the full page text.
func ContactExcerpt(html []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()

	var sections []string
	doc.Find("div, section, footer").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text == "" || !contactRe.MatchString(text) {
			return true
		}
		sections = append(sections, text)
		return len(sections) < maxSections
	})

	if len(sections) > 0 {
		return strings.TrimSpace(strings.Join(sections, " "))
	}

	full := []rune(doc.Text())
	if len(full) > fallbackChars {
		full = full[:fallbackChars]
	}
	return strings.TrimSpace(string(full))
}
