package store

import "time"

// Run is one stored collection pass: every traffic row fetched for one
// property and date range.
type Run struct {
	ID         string
	Property   string
	RangeStart time.Time
	RangeEnd   time.Time
	CreatedAt  time.Time
}

// TrafficRecord is one persisted traffic row. Metric values are stored
// parsed; the adapter renders them back to raw rows on replay.
type TrafficRecord struct {
	RunID              string
	Axis               string
	Dimension          string
	Sessions           float64
	TotalUsers         float64
	NewUsers           float64
	Conversions        float64
	TotalRevenue       float64
	EngagementRate     float64
	BounceRate         float64
	AvgSessionDuration float64
}
