package analysis

import (
	"context"
	"testing"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() domain.AnalysisConfig {
	return domain.AnalysisConfig{
		PropertyID: "272846783",
		Current:    domain.DateRange{Start: "2026-01-01", End: "2026-01-15"},
		Previous:   domain.DateRange{Start: "2025-01-01", End: "2025-01-15"},
		Axes:       []domain.DimensionAxis{domain.AxisDeviceCategory, domain.AxisSourceMedium},
	}
}

func periodData(deviceSessions map[string]string, organicSessions string) domain.PeriodData {
	var deviceRows []domain.TrafficRow
	for dim, sessions := range deviceSessions {
		deviceRows = append(deviceRows, trafficRow(dim, map[domain.Metric]string{
			domain.MetricSessions: sessions,
		}))
	}
	return domain.PeriodData{
		Traffic: map[domain.DimensionAxis][]domain.TrafficRow{
			domain.AxisDeviceCategory: deviceRows,
		},
		Channels: []domain.TrafficRow{
			trafficRow(OrganicSearchChannel, map[domain.Metric]string{
				domain.MetricSessions: organicSessions,
			}),
		},
	}
}

func TestAnalyze_CriticalOrganicDrop(t *testing.T) {
	current := periodData(map[string]string{"desktop": "4000"}, "8000")
	previous := periodData(map[string]string{"desktop": "5000"}, "10000")

	report, err := Analyze(context.Background(), testConfig(), current, previous)
	require.NoError(t, err)

	alert := report.OrganicAlert()
	require.NotNil(t, alert)
	assert.Equal(t, domain.SeverityCritical, alert.Severity)
	assert.InDelta(t, -20.0, alert.SessionsPct, 1e-9)
}

func TestAnalyze_SectionOrder(t *testing.T) {
	current := periodData(map[string]string{"desktop": "100"}, "100")
	previous := periodData(map[string]string{"desktop": "100"}, "100")

	report, err := Analyze(context.Background(), testConfig(), current, previous)
	require.NoError(t, err)

	require.Len(t, report.Sections, 4)
	assert.Equal(t, "Executive Summary", report.Sections[0].Title)
	assert.Equal(t, "Organic Search", report.Sections[1].Title)
	assert.Equal(t, "Devices", report.Sections[2].Title)
	assert.Equal(t, "Sources", report.Sections[3].Title)
	assert.Nil(t, report.Sections[0].Alert)
	assert.NotNil(t, report.Sections[1].Alert)
}

func TestAnalyze_EmptyPeriodsProduceZeroReport(t *testing.T) {
	report, err := Analyze(context.Background(), testConfig(), domain.PeriodData{}, domain.PeriodData{})
	require.NoError(t, err)

	alert := report.OrganicAlert()
	require.NotNil(t, alert)
	assert.Equal(t, domain.SeverityPositive, alert.Severity)
	assert.Zero(t, alert.SessionsPct)

	summary := report.Sections[0]
	require.Len(t, summary.Rows, len(domain.Metrics()))
	assert.Equal(t, 0.0, summary.Rows[0]["Current"])
	assert.Equal(t, 0.0, summary.Rows[0]["Previous"])
}

func TestAnalyze_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Current.Start = "01/01/2026"

	_, err := Analyze(context.Background(), cfg, domain.PeriodData{}, domain.PeriodData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid analysis config")
}

func TestAnalyze_PropagatesAggregationFault(t *testing.T) {
	current := domain.PeriodData{
		Traffic: map[domain.DimensionAxis][]domain.TrafficRow{
			domain.AxisDeviceCategory: {
				trafficRow("desktop", map[domain.Metric]string{domain.MetricSessions: "NaN-ish"}),
			},
		},
	}

	_, err := Analyze(context.Background(), testConfig(), current, domain.PeriodData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregating current period")
}

func TestAssembleReport_RowOrderMatchesAggregator(t *testing.T) {
	current, err := Aggregate([]domain.TrafficRow{
		trafficRow("desktop", map[domain.Metric]string{domain.MetricSessions: "10"}),
		trafficRow("mobile", map[domain.Metric]string{domain.MetricSessions: "20"}),
		trafficRow("tablet", map[domain.Metric]string{domain.MetricSessions: "5"}),
	})
	require.NoError(t, err)
	previous, err := Aggregate(nil)
	require.NoError(t, err)

	cfg := testConfig()
	axes := []domain.DimensionAxis{domain.AxisDeviceCategory}
	rows := CompareResults(current, previous)
	report := AssembleReport(cfg, rows[0], rows[0], Classify(rows[0]), axes, map[domain.DimensionAxis][]domain.ComparisonRow{
		domain.AxisDeviceCategory: rows,
	})

	devices := report.Sections[2]
	require.Len(t, devices.Rows, 3)
	assert.Equal(t, "desktop", devices.Rows[0]["Device"])
	assert.Equal(t, "mobile", devices.Rows[1]["Device"])
	assert.Equal(t, "tablet", devices.Rows[2]["Device"])
	assert.Equal(t, "new", devices.Rows[0]["Sessions Change (%)"])
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "-20.00%", FormatPct(domain.MetricDelta{Pct: -20}))
	assert.Equal(t, "+12.34%", FormatPct(domain.MetricDelta{Pct: 12.34}))
	assert.Equal(t, "+0.00%", FormatPct(domain.MetricDelta{Pct: 0}))

	sentinel := Compare(record("k", 500), domain.ZeroRecord("k")).Deltas[domain.MetricSessions]
	assert.Equal(t, "new", FormatPct(sentinel))
}
