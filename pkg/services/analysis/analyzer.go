package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

// Analyze runs the full comparison pipeline over the two fetched periods:
// aggregate per axis, compute deltas, classify the organic search trend and
// assemble the report. The pipeline is synchronous and allocates everything
// fresh per run; no state survives the call.
func Analyze(
	ctx context.Context,
	cfg domain.AnalysisConfig,
	current, previous domain.PeriodData,
) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	axes := cfg.Axes
	if len(axes) == 0 {
		axes = domain.DefaultAxes()
	}

	axisRows := make(map[domain.DimensionAxis][]domain.ComparisonRow, len(axes))
	var totals domain.ComparisonRow
	for i, axis := range axes {
		curAgg, err := Aggregate(current.Traffic[axis])
		if err != nil {
			return nil, fmt.Errorf("aggregating current period by %s: %w", axis, err)
		}
		prevAgg, err := Aggregate(previous.Traffic[axis])
		if err != nil {
			return nil, fmt.Errorf("aggregating previous period by %s: %w", axis, err)
		}
		axisRows[axis] = CompareResults(curAgg, prevAgg)

		// The first axis partitions sessions completely, so its totals are
		// the overall totals.
		if i == 0 {
			totals = Compare(curAgg.Totals("Overall"), prevAgg.Totals("Overall"))
		}

		logger.Debug().
			Str("axis", string(axis)).
			Int("current_groups", curAgg.Len()).
			Int("previous_groups", prevAgg.Len()).
			Msg("axis aggregated")
	}

	curChannels, err := Aggregate(current.Channels)
	if err != nil {
		return nil, fmt.Errorf("aggregating current period channels: %w", err)
	}
	prevChannels, err := Aggregate(previous.Channels)
	if err != nil {
		return nil, fmt.Errorf("aggregating previous period channels: %w", err)
	}

	organic := Compare(
		curChannels.Record(OrganicSearchChannel),
		prevChannels.Record(OrganicSearchChannel),
	)
	alert := Classify(organic)

	logger.Info().
		Str("severity", string(alert.Severity)).
		Float64("organic_sessions", organic.Current.Sessions).
		Str("organic_sessions_trend", FormatPct(organic.Deltas[domain.MetricSessions])).
		Msg("organic search classified")

	return AssembleReport(cfg, totals, organic, alert, axes, axisRows), nil
}
