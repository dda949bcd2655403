package domain

import "math"

// MetricDelta is the absolute and percentage change of one metric between
// two periods. Pct is +Inf when the previous value is zero and the current
// one is positive ("growth from zero"); renderers show that as "new".
type MetricDelta struct {
	Current  float64
	Previous float64
	Abs      float64
	Pct      float64
}

// GrowthFromZero reports whether the percentage delta is the growth-from-zero
// sentinel rather than a finite percentage.
func (d MetricDelta) GrowthFromZero() bool {
	return math.IsInf(d.Pct, 1)
}

// ComparisonRow pairs the current and previous period records of one
// dimension key with the per-metric deltas. Rows are built once per analysis
// run and are not mutated afterwards.
type ComparisonRow struct {
	Key      string
	Current  MetricRecord
	Previous MetricRecord
	Deltas   map[Metric]MetricDelta
}
