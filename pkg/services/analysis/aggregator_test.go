package analysis

import (
	"testing"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trafficRow(dim string, metrics map[domain.Metric]string) domain.TrafficRow {
	return domain.TrafficRow{Dimension: dim, Metrics: metrics}
}

func TestAggregate_SumsAdditiveMetrics(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("desktop", map[domain.Metric]string{
			domain.MetricSessions:     "100",
			domain.MetricTotalUsers:   "80",
			domain.MetricTotalRevenue: "1250.50",
		}),
		trafficRow("desktop", map[domain.Metric]string{
			domain.MetricSessions:     "50",
			domain.MetricTotalUsers:   "40",
			domain.MetricTotalRevenue: "249.50",
		}),
	}

	result, err := Aggregate(rows)
	require.NoError(t, err)

	require.Equal(t, []string{"desktop"}, result.Keys())
	rec := result.Record("desktop")
	assert.Equal(t, 150.0, rec.Sessions)
	assert.Equal(t, 120.0, rec.TotalUsers)
	assert.Equal(t, 1500.0, rec.TotalRevenue)
}

func TestAggregate_WeightsRatesBySessions(t *testing.T) {
	// 100 sessions at 50% engagement and 300 sessions at 90% must average
	// to 80%, not the naive 70%.
	rows := []domain.TrafficRow{
		trafficRow("mobile", map[domain.Metric]string{
			domain.MetricSessions:       "100",
			domain.MetricEngagementRate: "0.5",
		}),
		trafficRow("mobile", map[domain.Metric]string{
			domain.MetricSessions:       "300",
			domain.MetricEngagementRate: "0.9",
		}),
	}

	result, err := Aggregate(rows)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, result.Record("mobile").EngagementRate, 1e-9)
}

func TestAggregate_ZeroSessionsFallsBackToPlainMean(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("tablet", map[domain.Metric]string{
			domain.MetricSessions:   "0",
			domain.MetricBounceRate: "0.4",
		}),
		trafficRow("tablet", map[domain.Metric]string{
			domain.MetricSessions:   "0",
			domain.MetricBounceRate: "0.6",
		}),
	}

	result, err := Aggregate(rows)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.Record("tablet").BounceRate, 1e-9)
}

func TestAggregate_EmptyInput(t *testing.T) {
	result, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
	assert.Empty(t, result.Keys())
}

func TestAggregate_MissingMetricsDefaultToZero(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("/home", map[domain.Metric]string{
			domain.MetricSessions: "500",
		}),
	}

	result, err := Aggregate(rows)
	require.NoError(t, err)

	rec := result.Record("/home")
	assert.Equal(t, 500.0, rec.Sessions)
	assert.Zero(t, rec.Conversions)
	assert.Zero(t, rec.TotalRevenue)
	assert.Zero(t, rec.EngagementRate)
}

func TestAggregate_KeysAreCaseSensitive(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("Mobile", map[domain.Metric]string{domain.MetricSessions: "10"}),
		trafficRow("mobile", map[domain.Metric]string{domain.MetricSessions: "20"}),
	}

	result, err := Aggregate(rows)
	require.NoError(t, err)

	require.Equal(t, []string{"Mobile", "mobile"}, result.Keys())
	assert.Equal(t, 10.0, result.Record("Mobile").Sessions)
	assert.Equal(t, 20.0, result.Record("mobile").Sessions)
}

func TestAggregate_RejectsNonNumericValues(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("desktop", map[domain.Metric]string{
			domain.MetricSessions: "not-a-number",
		}),
	}

	_, err := Aggregate(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-numeric")
	assert.Contains(t, err.Error(), "desktop")
	assert.Contains(t, err.Error(), "sessions")
}

func TestAggregate_Idempotent(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("google / organic", map[domain.Metric]string{
			domain.MetricSessions:       "120",
			domain.MetricEngagementRate: "0.55",
		}),
		trafficRow("bing / organic", map[domain.Metric]string{
			domain.MetricSessions:       "30",
			domain.MetricEngagementRate: "0.35",
		}),
	}

	first, err := Aggregate(rows)
	require.NoError(t, err)
	second, err := Aggregate(rows)
	require.NoError(t, err)

	require.Equal(t, first.Keys(), second.Keys())
	for _, key := range first.Keys() {
		assert.Equal(t, first.Record(key), second.Record(key))
	}
}

func TestAggregateResult_UnknownKeyIsZeroRecord(t *testing.T) {
	result, err := Aggregate(nil)
	require.NoError(t, err)

	rec := result.Record("missing")
	assert.Equal(t, domain.ZeroRecord("missing"), rec)
}

func TestAggregateResult_Totals(t *testing.T) {
	rows := []domain.TrafficRow{
		trafficRow("desktop", map[domain.Metric]string{
			domain.MetricSessions:   "100",
			domain.MetricBounceRate: "0.2",
		}),
		trafficRow("mobile", map[domain.Metric]string{
			domain.MetricSessions:   "300",
			domain.MetricBounceRate: "0.6",
		}),
	}

	result, err := Aggregate(rows)
	require.NoError(t, err)

	totals := result.Totals("Overall")
	assert.Equal(t, "Overall", totals.Key)
	assert.Equal(t, 400.0, totals.Sessions)
	assert.InDelta(t, 0.5, totals.BounceRate, 1e-9)
}
