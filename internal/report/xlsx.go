package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/saadjs/nurse-aid/internal/model"
)

// XLSX writes each report as a workbook in Dir with one sheet per bucket.
type XLSX struct {
	Dir string
}

func (x XLSX) FileName(r model.ExpiryReport) string {
	return fmt.Sprintf("Expiry Report for %s.xlsx", Title(r))
}

func (x XLSX) WriteExpiryReport(r model.ExpiryReport) (string, error) {
	if err := os.MkdirAll(x.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()

	title := Title(r)
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Expiry Report for " + title,
		Subject:    r.Owner,
		Creator:    "nurseaid",
		Identifier: uuid.NewString(),
		Created:    r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return "", fmt.Errorf("set report properties: %w", err)
	}

	headingStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("create heading style: %w", err)
	}

	for i, page := range Pages(r) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", page.Sheet); err != nil {
				return "", fmt.Errorf("rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(page.Sheet); err != nil {
			return "", fmt.Errorf("create sheet %s: %w", page.Sheet, err)
		}
		rows := append([]string{title, page.Heading}, page.Names...)
		for n, value := range rows {
			cell, err := excelize.CoordinatesToCellName(1, n+1)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(page.Sheet, cell, value); err != nil {
				return "", fmt.Errorf("write %s!%s: %w", page.Sheet, cell, err)
			}
		}
		if err := f.SetCellStyle(page.Sheet, "A1", "A2", headingStyle); err != nil {
			return "", fmt.Errorf("style %s headings: %w", page.Sheet, err)
		}
		if err := f.SetColWidth(page.Sheet, "A", "A", 60); err != nil {
			return "", fmt.Errorf("size %s column: %w", page.Sheet, err)
		}
	}
	f.SetActiveSheet(0)

	path := filepath.Join(x.Dir, x.FileName(r))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}
	return path, nil
}
