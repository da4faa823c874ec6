package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/extract"
	"github.com/sells-group/directory-cli/internal/model"
	"github.com/sells-group/directory-cli/internal/store"
)

// CleanSummary reports what a cleaning pass did.
type CleanSummary struct {
	Records int
	Removed int
}

// Clean re-normalizes every record and drops entities whose website
// duplicates an earlier one. The first occurrence of a website always wins.
func (p *Pipeline) Clean(_ context.Context) (*CleanSummary, error) {
	records := p.records.Load()

	seen := make(map[string]struct{}, len(records))
	cleaned := make([]model.Record, 0, len(records))
	for _, rec := range records {
		rec.Name = extract.CleanName(rec.Name, rec.Website)
		rec.Emails = extract.CleanEmails(rec.Emails)
		rec.Phones = extract.CleanPhones(rec.Phones)

		if _, dup := seen[rec.Website]; dup {
			continue
		}
		seen[rec.Website] = struct{}{}
		cleaned = append(cleaned, rec)
	}

	if err := p.records.Save(cleaned); err != nil {
		zap.L().Error("records save failed", zap.Error(err))
	}
	if err := store.ExportWorkbook(p.workbookPath, cleaned); err != nil {
		zap.L().Error("workbook export failed", zap.Error(err))
	}

	summary := &CleanSummary{
		Records: len(cleaned),
		Removed: len(records) - len(cleaned),
	}
	zap.L().Info("clean complete",
		zap.Int("records", summary.Records),
		zap.Int("removed", summary.Removed))
	return summary, nil
}

// Export rewrites the XLSX snapshot from the current records file.
func (p *Pipeline) Export(_ context.Context) (int, error) {
	records := p.records.Load()
	if err := store.ExportWorkbook(p.workbookPath, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
