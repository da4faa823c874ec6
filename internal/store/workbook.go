package store

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/directory-cli/internal/model"
)

// ExportWorkbook writes the tabular snapshot: one sheet, a header row, one
// row per record, deduplicated by website keeping the first occurrence.
func ExportWorkbook(path string, records []model.Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Restaurants")
	if err != nil {
		return eris.Wrap(err, "workbook: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{"Name", "Website", "Email", "Phone"} {
		header.AddCell().SetString(col)
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.Website]; dup {
			continue
		}
		seen[r.Website] = struct{}{}

		row := sheet.AddRow()
		row.AddCell().SetString(r.Name)
		row.AddCell().SetString(r.Website)
		row.AddCell().SetString(r.Email())
		row.AddCell().SetString(r.Phone())
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "workbook: save %s", path)
	}
	return nil
}
