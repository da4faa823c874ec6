package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/pipeline"
	"github.com/sells-group/directory-cli/internal/resolver"
	"github.com/sells-group/directory-cli/internal/scrape"
	"github.com/sells-group/directory-cli/internal/store"
	"github.com/sells-group/directory-cli/pkg/anthropic"
	"github.com/sells-group/directory-cli/pkg/google"
)

// buildPipeline assembles the run pipeline from config. The returned cleanup
// closes the page cache.
func buildPipeline() (*pipeline.Pipeline, func(), error) {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, nil, eris.Wrapf(err, "create output dir %s", cfg.Output.Dir)
	}

	cleanup := func() {}
	var cache *store.PageCache
	if c, err := store.NewPageCache(cfg.Output.CachePath()); err != nil {
		// The cache is an optimization; run without it.
		zap.L().Warn("page cache unavailable", zap.Error(err))
	} else {
		cache = c
		cleanup = func() { _ = c.Close() }
	}

	fetcher := scrape.NewFetcher(scrape.Options{
		Timeout:        time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		RequestsPerSec: cfg.Scrape.RequestsPerSec,
		Cache:          cache,
		CacheTTL:       time.Duration(cfg.Scrape.CacheTTLHours) * time.Hour,
	})

	var res *resolver.Resolver
	if cfg.Anthropic.Key != "" {
		res = resolver.New(
			anthropic.NewClient(cfg.Anthropic.Key),
			cfg.Anthropic.Model,
			cfg.Anthropic.MaxBatchSize,
		)
	}

	p := pipeline.New(pipeline.Options{
		Query:    cfg.Search.Query,
		PageSize: cfg.Search.PageSize,
		Search: google.NewClient(cfg.Google.APIKey, cfg.Google.EngineID,
			google.WithBaseURL(cfg.Google.BaseURL),
			google.WithPageSize(cfg.Search.PageSize),
		),
		Fetcher:      fetcher,
		Resolver:     res,
		States:       store.NewStateStore(cfg.Output.StatePath()),
		Records:      store.NewRecordStore(cfg.Output.RecordsPath()),
		WorkbookPath: cfg.Output.WorkbookPath(),
	})
	return p, cleanup, nil
}

// confirm asks a y/n question on stdin and reports whether the answer was yes.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/n): ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
