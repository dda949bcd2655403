package domain

// Metric identifies one of the GA4 metrics tracked per dimension value.
// Names match the GA4 Data API metric names.
type Metric string

const (
	MetricSessions           Metric = "sessions"
	MetricTotalUsers         Metric = "totalUsers"
	MetricNewUsers           Metric = "newUsers"
	MetricConversions        Metric = "conversions"
	MetricTotalRevenue       Metric = "totalRevenue"
	MetricEngagementRate     Metric = "engagementRate"
	MetricBounceRate         Metric = "bounceRate"
	MetricAvgSessionDuration Metric = "averageSessionDuration"
)

// Metrics lists every tracked metric in report column order.
func Metrics() []Metric {
	return []Metric{
		MetricSessions,
		MetricTotalUsers,
		MetricNewUsers,
		MetricConversions,
		MetricTotalRevenue,
		MetricEngagementRate,
		MetricBounceRate,
		MetricAvgSessionDuration,
	}
}

// Additive reports whether values of this metric are summed when rows are
// grouped. Rate and duration metrics are combined as a session-weighted
// average instead.
func (m Metric) Additive() bool {
	switch m {
	case MetricEngagementRate, MetricBounceRate, MetricAvgSessionDuration:
		return false
	}
	return true
}

// TrafficRow is one raw row from the fetch layer: a single dimension value
// with its metric values for one period. Metric values are kept as the raw
// strings the GA4 API returns; parsing happens at the aggregation boundary.
type TrafficRow struct {
	Dimension string
	Metrics   map[Metric]string
}

// MetricRecord holds the aggregated metric values of one dimension key for
// one period. Rates are fractions in [0,1], the session duration is in
// seconds. A key with no source rows is represented by a record with all
// values zero, never by a missing record.
type MetricRecord struct {
	Key                string
	Sessions           float64
	TotalUsers         float64
	NewUsers           float64
	Conversions        float64
	TotalRevenue       float64
	EngagementRate     float64
	BounceRate         float64
	AvgSessionDuration float64
}

// ZeroRecord returns the all-zero record for a key, used as the synthetic
// previous-period baseline when the key is new.
func ZeroRecord(key string) MetricRecord {
	return MetricRecord{Key: key}
}

func (r MetricRecord) Get(m Metric) float64 {
	switch m {
	case MetricSessions:
		return r.Sessions
	case MetricTotalUsers:
		return r.TotalUsers
	case MetricNewUsers:
		return r.NewUsers
	case MetricConversions:
		return r.Conversions
	case MetricTotalRevenue:
		return r.TotalRevenue
	case MetricEngagementRate:
		return r.EngagementRate
	case MetricBounceRate:
		return r.BounceRate
	case MetricAvgSessionDuration:
		return r.AvgSessionDuration
	}
	return 0
}

func (r *MetricRecord) Set(m Metric, v float64) {
	switch m {
	case MetricSessions:
		r.Sessions = v
	case MetricTotalUsers:
		r.TotalUsers = v
	case MetricNewUsers:
		r.NewUsers = v
	case MetricConversions:
		r.Conversions = v
	case MetricTotalRevenue:
		r.TotalRevenue = v
	case MetricEngagementRate:
		r.EngagementRate = v
	case MetricBounceRate:
		r.BounceRate = v
	case MetricAvgSessionDuration:
		r.AvgSessionDuration = v
	}
}
