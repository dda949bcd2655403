package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

type TableConfig struct {
	ColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		ColumnWidth: 24,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(section domain.ReportSection, row domain.ReportRow) string {
			cells := make([]string, 0, len(section.Columns))
			for _, col := range section.Columns {
				cells = append(cells, fmt.Sprintf("%-*v", c.config.ColumnWidth, formatCell(row[col])))
			}
			return "| " + strings.Join(cells, " | ") + " |"
		},
		"formatHeader": func(section domain.ReportSection) string {
			cells := make([]string, 0, len(section.Columns))
			for _, col := range section.Columns {
				cells = append(cells, fmt.Sprintf("%-*s", c.config.ColumnWidth, col))
			}
			return "| " + strings.Join(cells, " | ") + " |"
		},
		"separator": func(section domain.ReportSection) string {
			parts := make([]string, 0, len(section.Columns))
			for range section.Columns {
				parts = append(parts, strings.Repeat("-", c.config.ColumnWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
{{.Title}} ({{.Property}})

Current Period:  {{.CurrentPeriod.Start.Format "2006-01-02"}} to {{.CurrentPeriod.End.Format "2006-01-02"}} ({{.CurrentPeriod.Duration}} days)
Previous Period: {{.PreviousPeriod.Start.Format "2006-01-02"}} to {{.PreviousPeriod.End.Format "2006-01-02"}} ({{.PreviousPeriod.Duration}} days)

{{range .Sections}}
=== {{.Title}} ===
{{if .Alert}}[{{.Alert.Severity}}] {{.Alert.Message}}
{{end}}{{$section := .}}
{{separator .}}
{{formatHeader .}}
{{separator .}}
{{range .Rows}}{{formatRow $section .}}
{{end}}{{separator .}}
{{end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func formatCell(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.2f", n)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}
