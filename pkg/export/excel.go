package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names are capped by the xlsx format.
const maxSheetNameLen = 31

// ExcelWriter serializes a report into a workbook with one sheet per
// section.
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// WriteFile writes the workbook into a timestamped file under dir and
// returns the file path.
func (w *ExcelWriter) WriteFile(dir string, report *domain.Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"667EEA"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for _, section := range report.Sections {
		if err := w.writeSheet(f, section, headerStyle); err != nil {
			return "", err
		}
	}

	// Drop the default sheet that excelize seeds every workbook with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	name := fmt.Sprintf("organic_report_%s.xlsx", report.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func (w *ExcelWriter) writeSheet(f *excelize.File, section domain.ReportSection, headerStyle int) error {
	sheet := sheetName(section.Title)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	for col, title := range section.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, row := range section.Rows {
		for col, title := range section.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, row[title]); err != nil {
				return err
			}
		}
	}

	if len(section.Columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(section.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 22); err != nil {
			return err
		}
	}
	return nil
}

func sheetName(title string) string {
	// The format forbids a handful of characters in sheet names.
	replacer := strings.NewReplacer("/", "-", "\\", "-", "?", "", "*", "", "[", "(", "]", ")", ":", "-")
	name := replacer.Replace(title)
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	return name
}
