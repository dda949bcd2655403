package analysis

import (
	"fmt"
	"time"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

const (
	colMetric    = "Metric"
	colCurrent   = "Current"
	colPrevious  = "Previous"
	colChangeAbs = "Change"
	colChangePct = "Change (%)"
)

// FormatPct renders a percentage delta for report cells. The growth-from-zero
// sentinel is shown as "new" so consumers never see an infinity.
func FormatPct(d domain.MetricDelta) string {
	if d.GrowthFromZero() {
		return "new"
	}
	return fmt.Sprintf("%+.2f%%", d.Pct)
}

func metricLabel(m domain.Metric) string {
	switch m {
	case domain.MetricSessions:
		return "Sessions"
	case domain.MetricTotalUsers:
		return "Total Users"
	case domain.MetricNewUsers:
		return "New Users"
	case domain.MetricConversions:
		return "Conversions"
	case domain.MetricTotalRevenue:
		return "Total Revenue"
	case domain.MetricEngagementRate:
		return "Engagement Rate"
	case domain.MetricBounceRate:
		return "Bounce Rate"
	case domain.MetricAvgSessionDuration:
		return "Avg Session Duration (s)"
	}
	return string(m)
}

func axisTitle(axis domain.DimensionAxis) string {
	switch axis {
	case domain.AxisDeviceCategory:
		return "Devices"
	case domain.AxisSourceMedium:
		return "Sources"
	case domain.AxisLandingPage:
		return "Landing Pages"
	}
	return string(axis)
}

func axisColumn(axis domain.DimensionAxis) string {
	switch axis {
	case domain.AxisDeviceCategory:
		return "Device"
	case domain.AxisSourceMedium:
		return "Source / Medium"
	case domain.AxisLandingPage:
		return "Landing Page"
	}
	return string(axis)
}

// AssembleReport arranges comparison rows into the renderer-neutral report
// structure: an executive summary, the organic search table carrying the
// alert, and one table per dimension axis. Section and row order follow the
// aggregator's first-seen order so repeated runs over the same data diff
// cleanly.
func AssembleReport(
	cfg domain.AnalysisConfig,
	totals domain.ComparisonRow,
	organic domain.ComparisonRow,
	alert domain.Alert,
	axes []domain.DimensionAxis,
	axisRows map[domain.DimensionAxis][]domain.ComparisonRow,
) *domain.Report {
	report := &domain.Report{
		Title:          "Organic Traffic Report",
		Property:       cfg.PropertyID,
		CurrentPeriod:  cfg.Current.Period(),
		PreviousPeriod: cfg.Previous.Period(),
		GeneratedAt:    time.Now(),
	}

	report.Sections = append(report.Sections, metricTable("Executive Summary", totals, nil))
	report.Sections = append(report.Sections, metricTable("Organic Search", organic, &alert))
	for _, axis := range axes {
		report.Sections = append(report.Sections, axisTable(axis, axisRows[axis]))
	}
	return report
}

// metricTable lays a single comparison row out as one table row per metric.
func metricTable(title string, row domain.ComparisonRow, alert *domain.Alert) domain.ReportSection {
	section := domain.ReportSection{
		Title:   title,
		Columns: []string{colMetric, colCurrent, colPrevious, colChangeAbs, colChangePct},
		Summary: map[string]interface{}{
			"Sessions":       row.Current.Sessions,
			"Sessions Trend": FormatPct(row.Deltas[domain.MetricSessions]),
		},
		Alert: alert,
	}
	for _, m := range domain.Metrics() {
		d := row.Deltas[m]
		section.Rows = append(section.Rows, domain.ReportRow{
			colMetric:    metricLabel(m),
			colCurrent:   d.Current,
			colPrevious:  d.Previous,
			colChangeAbs: d.Abs,
			colChangePct: FormatPct(d),
		})
	}
	return section
}

func axisTable(axis domain.DimensionAxis, rows []domain.ComparisonRow) domain.ReportSection {
	keyCol := axisColumn(axis)
	section := domain.ReportSection{
		Title: axisTitle(axis),
		Columns: []string{
			keyCol,
			"Sessions (Current)",
			"Sessions (Previous)",
			"Sessions Change (%)",
			"Users (Current)",
			"Revenue (Current)",
		},
		Summary: map[string]interface{}{
			"Groups": len(rows),
		},
	}
	for _, row := range rows {
		section.Rows = append(section.Rows, domain.ReportRow{
			keyCol:                row.Key,
			"Sessions (Current)":  row.Current.Sessions,
			"Sessions (Previous)": row.Previous.Sessions,
			"Sessions Change (%)": FormatPct(row.Deltas[domain.MetricSessions]),
			"Users (Current)":     row.Current.TotalUsers,
			"Revenue (Current)":   row.Current.TotalRevenue,
		})
	}
	return section
}
