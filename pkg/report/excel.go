package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"likesdigest/pkg/model"
)

var excelHeader = []any{"Category", "Title", "Channel", "URL", "Type", "Summary", "Generated"}

// Excel writes the workbook: an all-records sheet, one sheet per
// category, and a language-learning sheet when that content exists.
// Skipped entirely (empty path, nil error) when no summaries
// succeeded.
func (g *Generator) Excel(data Data) (string, error) {
	success := data.successSummaries()
	if len(success) == 0 {
		return "", nil
	}

	path := filepath.Join(g.outputDir, data.datePrefix()+"_summaries.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "All"); err != nil {
		return "", err
	}
	if err := g.writeSheet(f, "All", data, success); err != nil {
		return "", err
	}

	for _, name := range data.sortedCategories() {
		summaries := data.summariesFor(name)
		if len(summaries) == 0 {
			continue
		}
		sheet := sheetName(name)
		if _, err := f.NewSheet(sheet); err != nil {
			return "", err
		}
		if err := g.writeSheet(f, sheet, data, summaries); err != nil {
			return "", err
		}
	}

	if learning := data.learningSummaries(); len(learning) > 0 {
		if _, err := f.NewSheet("Language Learning"); err != nil {
			return "", err
		}
		if err := g.writeSheet(f, "Language Learning", data, learning); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write excel report: %w", err)
	}
	return path, nil
}

func (g *Generator) writeSheet(f *excelize.File, sheet string, data Data, summaries []model.Summary) error {
	if err := f.SetSheetRow(sheet, "A1", &excelHeader); err != nil {
		return err
	}
	generated := data.GeneratedAt.Format("2006-01-02 15:04")
	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			data.categoryOf(s.VideoID),
			s.VideoTitle,
			s.Channel,
			s.VideoURL,
			typeLabel(s.Type),
			s.Summary,
			generated,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName truncates to the workbook format's 31-character cap.
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) > 31 {
		return string(runes[:31])
	}
	return name
}
