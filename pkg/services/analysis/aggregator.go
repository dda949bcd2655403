package analysis

import (
	"fmt"
	"strconv"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

// AggregateResult maps dimension keys to their aggregated metric records for
// one period, preserving the order keys were first seen in the input.
type AggregateResult struct {
	keys    []string
	records map[string]domain.MetricRecord
}

// Keys returns the dimension keys in first-seen order.
func (r *AggregateResult) Keys() []string {
	return r.keys
}

func (r *AggregateResult) Len() int {
	return len(r.keys)
}

// Record returns the aggregated record for a key. Unknown keys yield the
// all-zero record so absence never surfaces as missing data downstream.
func (r *AggregateResult) Record(key string) domain.MetricRecord {
	if rec, ok := r.records[key]; ok {
		return rec
	}
	return domain.ZeroRecord(key)
}

func (r *AggregateResult) Has(key string) bool {
	_, ok := r.records[key]
	return ok
}

type accumulator struct {
	sums     map[domain.Metric]float64
	weighted map[domain.Metric]float64
	rowCount float64
	weight   float64 // total sessions, used to weight rate metrics
}

func newAccumulator() *accumulator {
	return &accumulator{
		sums:     make(map[domain.Metric]float64),
		weighted: make(map[domain.Metric]float64),
	}
}

// Aggregate groups raw period rows by dimension value and produces one
// metric record per key. Additive metrics are summed; rate metrics are
// combined as a session-weighted average so small groups do not skew the
// result. Keys are compared with exact, case-sensitive string equality, the
// same way the GA4 API treats dimension values. An empty input yields an
// empty result.
func Aggregate(rows []domain.TrafficRow) (*AggregateResult, error) {
	result := &AggregateResult{records: make(map[string]domain.MetricRecord)}
	accs := make(map[string]*accumulator)

	for _, row := range rows {
		acc, ok := accs[row.Dimension]
		if !ok {
			acc = newAccumulator()
			accs[row.Dimension] = acc
			result.keys = append(result.keys, row.Dimension)
		}

		sessions, err := parseMetric(row, domain.MetricSessions)
		if err != nil {
			return nil, err
		}

		for _, m := range domain.Metrics() {
			v, err := parseMetric(row, m)
			if err != nil {
				return nil, err
			}
			acc.sums[m] += v
			if !m.Additive() {
				acc.weighted[m] += v * sessions
			}
		}
		acc.rowCount++
		acc.weight += sessions
	}

	for _, key := range result.keys {
		result.records[key] = finalize(key, accs[key])
	}
	return result, nil
}

// Totals collapses every record of the result into a single record under the
// given key, applying the same additive-sum / session-weighted-rate rules.
func (r *AggregateResult) Totals(key string) domain.MetricRecord {
	acc := newAccumulator()
	for _, k := range r.keys {
		rec := r.records[k]
		for _, m := range domain.Metrics() {
			v := rec.Get(m)
			acc.sums[m] += v
			if !m.Additive() {
				acc.weighted[m] += v * rec.Sessions
			}
		}
		acc.rowCount++
		acc.weight += rec.Sessions
	}
	return finalize(key, acc)
}

func finalize(key string, acc *accumulator) domain.MetricRecord {
	rec := domain.ZeroRecord(key)
	for _, m := range domain.Metrics() {
		switch {
		case m.Additive():
			rec.Set(m, acc.sums[m])
		case acc.weight > 0:
			rec.Set(m, acc.weighted[m]/acc.weight)
		case acc.rowCount > 0:
			// No sessions to weight by; fall back to the plain mean.
			rec.Set(m, acc.sums[m]/acc.rowCount)
		}
	}
	return rec
}

// parseMetric reads one raw metric value. A missing or empty value is a
// legitimate zero; anything non-numeric is a fault at this boundary rather
// than something to coerce silently.
func parseMetric(row domain.TrafficRow, m domain.Metric) (float64, error) {
	raw, ok := row.Metrics[m]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q for metric %s of dimension %q", raw, m, row.Dimension)
	}
	return v, nil
}
