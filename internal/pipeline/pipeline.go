// Package pipeline sequences one directory-building run: load checkpoint,
// fetch a search page, extract and normalize per item, persist, export. The
// enrich and clean passes live here too. Everything is sequential; the only
// fatal errors are bad search arguments, everything else degrades and logs.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/extract"
	"github.com/sells-group/directory-cli/internal/model"
	"github.com/sells-group/directory-cli/internal/resolver"
	"github.com/sells-group/directory-cli/internal/scrape"
	"github.com/sells-group/directory-cli/internal/store"
	"github.com/sells-group/directory-cli/pkg/google"
)

// Pipeline wires the search client, content fetcher, stores, and the
// optional fallback resolver into the run passes.
type Pipeline struct {
	query    string
	pageSize int

	search   google.Client
	fetcher  *scrape.Fetcher
	resolver *resolver.Resolver // nil when no fallback key is configured

	states       *store.StateStore
	records      *store.RecordStore
	workbookPath string
}

// Options collects the pipeline's collaborators.
type Options struct {
	Query        string
	PageSize     int
	Search       google.Client
	Fetcher      *scrape.Fetcher
	Resolver     *resolver.Resolver
	States       *store.StateStore
	Records      *store.RecordStore
	WorkbookPath string
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{
		query:        opts.Query,
		pageSize:     opts.PageSize,
		search:       opts.Search,
		fetcher:      opts.Fetcher,
		resolver:     opts.Resolver,
		states:       opts.States,
		records:      opts.Records,
		workbookPath: opts.WorkbookPath,
	}
}

// HarvestSummary reports what one harvest run did.
type HarvestSummary struct {
	New     int
	Skipped int
	Invalid int
	Total   int
}

// Harvest performs one incremental run over the next search page. Only an
// invalid query/offset is fatal; search transport failures produce an empty
// page and the offset still advances so the next run moves on.
func (p *Pipeline) Harvest(ctx context.Context) (*HarvestSummary, error) {
	records := p.records.Load()
	state := p.states.Load()

	log := zap.L().With(zap.Int("start_index", state.StartIndex))
	log.Info("starting harvest", zap.String("query", p.query))

	resp, err := p.search.Search(ctx, p.query, state.StartIndex)
	if err != nil {
		if eris.Is(err, google.ErrInvalidArgument) {
			return nil, err
		}
		log.Warn("search failed, treating page as empty", zap.Error(err))
		resp = &google.SearchResponse{}
	}
	if resp.TotalResults != "" {
		log.Info("search page retrieved",
			zap.Int("items", len(resp.Items)),
			zap.String("total_results", resp.TotalResults))
	}

	summary := &HarvestSummary{}
	for _, item := range resp.Items {
		if state.Seen(item.Link) {
			summary.Skipped++
			log.Debug("skipping already scraped", zap.String("link", item.Link))
			continue
		}
		if !extract.ValidateURL(item.Link) {
			summary.Invalid++
			log.Debug("skipping invalid link", zap.String("link", item.Link))
			continue
		}

		rec := p.buildRecord(ctx, item)
		records = append(records, rec)
		state.MarkScraped(item.Link)
		summary.New++

		log.Info("new record",
			zap.String("name", rec.Name),
			zap.String("website", rec.Website),
			zap.String("email", rec.Email()),
			zap.String("phone", rec.Phone()),
		)
	}

	state.Advance(p.pageSize)
	p.persist(state, records)

	summary.Total = len(records)
	log.Info("harvest complete",
		zap.Int("new", summary.New),
		zap.Int("skipped", summary.Skipped),
		zap.Int("total", summary.Total))
	return summary, nil
}

// buildRecord extracts contact fields from a search result, falling back to
// a live page fetch when the snippet carries no email.
func (p *Pipeline) buildRecord(ctx context.Context, item google.Result) model.Record {
	emails := extract.Emails(item.Snippet)
	phones := extract.Phones(item.Snippet)

	if !extract.Found(emails) {
		if excerpt := p.fetcher.Excerpt(ctx, item.Link); excerpt != "" {
			if pageEmails := extract.Emails(excerpt); extract.Found(pageEmails) {
				emails = pageEmails
			}
		}
	}

	return model.Record{
		Name:    extract.CleanName(item.Title, item.Link),
		Website: item.Link,
		Emails:  extract.CleanEmails(emails),
		Phones:  extract.CleanPhones(phones),
	}
}

// persist saves state before records so a crash between the two re-processes
// nothing; write failures are logged and in-memory state stands.
func (p *Pipeline) persist(state *model.RunState, records []model.Record) {
	if err := p.states.Save(state); err != nil {
		zap.L().Error("state save failed", zap.Error(err))
	}
	if err := p.records.Save(records); err != nil {
		zap.L().Error("records save failed", zap.Error(err))
	}
	if err := store.ExportWorkbook(p.workbookPath, records); err != nil {
		zap.L().Error("workbook export failed", zap.Error(err))
	}
}
