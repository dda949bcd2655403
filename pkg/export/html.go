package export

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f5f7fa; color: #2d3748; padding: 20px; }
.container { max-width: 1200px; margin: 0 auto; background: white; border-radius: 10px; padding: 32px; }
header { border-bottom: 3px solid #667eea; padding-bottom: 16px; margin-bottom: 24px; }
h1 { margin: 0 0 8px 0; }
.periods { color: #718096; font-size: 0.95em; }
h2 { color: #2d3748; border-bottom: 2px solid #e2e8f0; padding-bottom: 6px; margin-top: 36px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th { background: #667eea; color: white; padding: 10px 12px; text-align: left; }
td { padding: 8px 12px; border-bottom: 1px solid #e2e8f0; }
tr:hover td { background: #f7fafc; }
.alert { padding: 16px; border-radius: 6px; margin: 12px 0; }
.alert-critical { background: #f8d7da; border-left: 4px solid #dc3545; color: #721c24; }
.alert-warning { background: #fff3cd; border-left: 4px solid #ffc107; color: #856404; }
.alert-positive { background: #d4edda; border-left: 4px solid #28a745; color: #155724; }
footer { margin-top: 40px; color: #718096; font-size: 0.85em; text-align: center; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>{{.Title}}</h1>
<p class="periods">Property {{.Property}} &mdash;
current {{.CurrentPeriod.Start.Format "2006-01-02"}} to {{.CurrentPeriod.End.Format "2006-01-02"}},
previous {{.PreviousPeriod.Start.Format "2006-01-02"}} to {{.PreviousPeriod.End.Format "2006-01-02"}}</p>
</header>
{{range .Sections}}
<section>
<h2>{{.Title}}</h2>
{{if .Alert}}<div class="alert alert-{{.Alert.Severity}}"><strong>{{.Alert.Subject}}:</strong> {{.Alert.Message}}</div>{{end}}
{{$section := .}}
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{$row := .}}{{range $section.Columns}}<td>{{cell (index $row .)}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>
</section>
{{end}}
<footer>Generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}} &middot; data via Google Analytics Data API</footer>
</div>
</body>
</html>
`

// HTMLRenderer serializes a report into a standalone HTML document.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"cell": formatCell,
	}).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(w io.Writer, report *domain.Report) error {
	return r.tmpl.Execute(w, report)
}

// WriteFile renders the report into a timestamped file under dir and returns
// the file path.
func (r *HTMLRenderer) WriteFile(dir string, report *domain.Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	name := fmt.Sprintf("organic_report_%s.html", report.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := r.Render(f, report); err != nil {
		return "", fmt.Errorf("failed to render html report: %w", err)
	}
	return path, nil
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
