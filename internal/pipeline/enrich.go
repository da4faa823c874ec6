package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/extract"
	"github.com/sells-group/directory-cli/internal/model"
)

// EnrichSummary reports what a fill-missing-contacts pass did.
type EnrichSummary struct {
	Checked  int
	Filled   int
	Resolved int
}

// Enrich re-visits records still missing an email: first a live page fetch
// and re-extraction, then the Claude fallback for whatever is left. Phones
// are filled opportunistically when the page yields them.
func (p *Pipeline) Enrich(ctx context.Context) (*EnrichSummary, error) {
	records := p.records.Load()
	summary := &EnrichSummary{}

	for i := range records {
		rec := &records[i]
		if rec.HasEmail() {
			continue
		}
		summary.Checked++
		zap.L().Info("checking record for missing email",
			zap.String("name", rec.Name), zap.String("website", rec.Website))

		excerpt := p.fetcher.Excerpt(ctx, rec.Website)
		if excerpt == "" {
			continue
		}

		if emails := extract.CleanEmails(extract.Emails(excerpt)); len(emails) > 0 {
			rec.Emails = emails
			summary.Filled++
			zap.L().Info("found email on page", zap.String("email", rec.Email()))
		}
		if !rec.HasPhone() {
			if phones := extract.CleanPhones(extract.Phones(excerpt)); len(phones) > 0 {
				rec.Phones = phones
				zap.L().Info("found phone on page", zap.String("phone", rec.Phone()))
			}
		}
	}

	if p.resolver != nil {
		var missing []*model.Record
		for i := range records {
			if !records[i].HasEmail() {
				missing = append(missing, &records[i])
			}
		}
		if len(missing) > 0 {
			summary.Resolved = p.resolver.ResolveEmails(ctx, missing)
		}
	}

	if summary.Filled+summary.Resolved > 0 {
		if err := p.records.Save(records); err != nil {
			zap.L().Error("records save failed", zap.Error(err))
		}
	}

	zap.L().Info("enrich complete",
		zap.Int("checked", summary.Checked),
		zap.Int("filled", summary.Filled),
		zap.Int("resolved", summary.Resolved))
	return summary, nil
}
