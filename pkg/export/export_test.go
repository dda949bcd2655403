package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Title:    "Organic Traffic Report",
		Property: "272846783",
		CurrentPeriod: domain.TimePeriod{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		PreviousPeriod: domain.TimePeriod{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		GeneratedAt: time.Date(2026, 1, 16, 9, 30, 0, 0, time.UTC),
		Sections: []domain.ReportSection{
			{
				Title:   "Organic Search",
				Columns: []string{"Metric", "Current", "Previous", "Change (%)"},
				Rows: []domain.ReportRow{
					{"Metric": "Sessions", "Current": 8000.0, "Previous": 10000.0, "Change (%)": "-20.00%"},
				},
				Alert: &domain.Alert{
					Severity: domain.SeverityCritical,
					Subject:  "Organic Search sessions",
					Message:  "organic sessions dropped 20.0%, investigation needed",
				},
			},
			{
				Title:   "Devices",
				Columns: []string{"Device", "Sessions (Current)"},
				Rows: []domain.ReportRow{
					{"Device": "desktop", "Sessions (Current)": 5000.0},
					{"Device": "mobile", "Sessions (Current)": 3000.0},
				},
			},
		},
	}
}

func TestHTMLRenderer_Render(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleReport()))
	html := buf.String()

	assert.Contains(t, html, "Organic Traffic Report")
	assert.Contains(t, html, `class="alert alert-critical"`)
	assert.Contains(t, html, "organic sessions dropped 20.0%")
	assert.Contains(t, html, "-20.00%")
	assert.Contains(t, html, "<td>desktop</td>")

	// Row order is preserved in the rendered table.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("desktop")), bytes.Index(buf.Bytes(), []byte("mobile")))
}

func TestHTMLRenderer_WriteFile(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := r.WriteFile(dir, sampleReport())
	require.NoError(t, err)
	assert.Contains(t, path, "organic_report_20260116_093000.html")
	assert.FileExists(t, path)
}

func TestExcelWriter_WriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExcelWriter().WriteFile(dir, sampleReport())
	require.NoError(t, err)
	assert.Contains(t, path, "organic_report_20260116_093000.xlsx")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Organic Search", "Devices"}, f.GetSheetList())

	header, err := f.GetCellValue("Devices", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Device", header)

	first, err := f.GetCellValue("Devices", "A2")
	require.NoError(t, err)
	assert.Equal(t, "desktop", first)

	sessions, err := f.GetCellValue("Organic Search", "B2")
	require.NoError(t, err)
	assert.Equal(t, "8000", sessions)
}

func TestSheetName_SanitizesAndTruncates(t *testing.T) {
	assert.Equal(t, "Source - Medium", sheetName("Source / Medium"))
	long := sheetName("An Extremely Long Section Title That Overflows")
	assert.LessOrEqual(t, len(long), maxSheetNameLen)
}
