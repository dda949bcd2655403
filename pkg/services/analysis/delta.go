package analysis

import (
	"math"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

// Compare builds the comparison row for one dimension key from its current
// and previous period records. The percentage delta is 100*(c-p)/p for a
// non-zero baseline; a zero baseline yields 0 when the current value is also
// zero and the +Inf growth-from-zero sentinel otherwise. Division by zero is
// never a fault here.
func Compare(current, previous domain.MetricRecord) domain.ComparisonRow {
	key := current.Key
	if key == "" {
		key = previous.Key
	}

	deltas := make(map[domain.Metric]domain.MetricDelta, len(domain.Metrics()))
	for _, m := range domain.Metrics() {
		c, p := current.Get(m), previous.Get(m)
		d := domain.MetricDelta{
			Current:  c,
			Previous: p,
			Abs:      c - p,
		}
		switch {
		case p != 0:
			d.Pct = (c - p) / p * 100
		case c == 0:
			d.Pct = 0
		default:
			d.Pct = math.Inf(1)
		}
		deltas[m] = d
	}

	return domain.ComparisonRow{
		Key:      key,
		Current:  current,
		Previous: previous,
		Deltas:   deltas,
	}
}

// CompareResults pairs up two aggregation passes key by key. Keys follow the
// current period's first-seen order; keys that only existed in the previous
// period are appended afterwards in their own order. A key missing from
// either side is compared against the zero record.
func CompareResults(current, previous *AggregateResult) []domain.ComparisonRow {
	rows := make([]domain.ComparisonRow, 0, current.Len())
	for _, key := range current.Keys() {
		rows = append(rows, Compare(current.Record(key), previous.Record(key)))
	}
	for _, key := range previous.Keys() {
		if current.Has(key) {
			continue
		}
		rows = append(rows, Compare(domain.ZeroRecord(key), previous.Record(key)))
	}
	return rows
}
