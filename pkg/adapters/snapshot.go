package adapters

import (
	"fmt"
	"strconv"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/seo-tools/traffic-atlas/pkg/models/store"
)

// ChannelAxis marks persisted channel-group rows, which live outside the
// dimension axes of the traffic tables.
const ChannelAxis = "channel"

// MapPeriodDataToStoreRecords flattens one fetched period into persistable
// records. Raw metric strings are parsed here; a non-numeric value is an
// error, the same contract the aggregation boundary enforces.
func MapPeriodDataToStoreRecords(runID string, data domain.PeriodData) ([]store.TrafficRecord, error) {
	var records []store.TrafficRecord

	appendRows := func(axis string, rows []domain.TrafficRow) error {
		for _, row := range rows {
			record := store.TrafficRecord{
				RunID:     runID,
				Axis:      axis,
				Dimension: row.Dimension,
			}
			for _, m := range domain.Metrics() {
				raw, ok := row.Metrics[m]
				if !ok || raw == "" {
					continue
				}
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("non-numeric value %q for metric %s of dimension %q", raw, m, row.Dimension)
				}
				setRecordMetric(&record, m, v)
			}
			records = append(records, record)
		}
		return nil
	}

	for _, axis := range domain.DefaultAxes() {
		if err := appendRows(string(axis), data.Traffic[axis]); err != nil {
			return nil, err
		}
	}
	if err := appendRows(ChannelAxis, data.Channels); err != nil {
		return nil, err
	}
	return records, nil
}

// MapStoreRecordsToPeriodData rebuilds the fetch-layer row sets from stored
// records, rendering metric values back to the raw string form the analysis
// core consumes.
func MapStoreRecordsToPeriodData(records []store.TrafficRecord) domain.PeriodData {
	data := domain.PeriodData{Traffic: make(map[domain.DimensionAxis][]domain.TrafficRow)}

	for _, record := range records {
		row := domain.TrafficRow{
			Dimension: record.Dimension,
			Metrics:   make(map[domain.Metric]string, len(domain.Metrics())),
		}
		for _, m := range domain.Metrics() {
			row.Metrics[m] = strconv.FormatFloat(recordMetric(record, m), 'f', -1, 64)
		}

		if record.Axis == ChannelAxis {
			data.Channels = append(data.Channels, row)
			continue
		}
		axis := domain.DimensionAxis(record.Axis)
		data.Traffic[axis] = append(data.Traffic[axis], row)
	}
	return data
}

func setRecordMetric(r *store.TrafficRecord, m domain.Metric, v float64) {
	switch m {
	case domain.MetricSessions:
		r.Sessions = v
	case domain.MetricTotalUsers:
		r.TotalUsers = v
	case domain.MetricNewUsers:
		r.NewUsers = v
	case domain.MetricConversions:
		r.Conversions = v
	case domain.MetricTotalRevenue:
		r.TotalRevenue = v
	case domain.MetricEngagementRate:
		r.EngagementRate = v
	case domain.MetricBounceRate:
		r.BounceRate = v
	case domain.MetricAvgSessionDuration:
		r.AvgSessionDuration = v
	}
}

func recordMetric(r store.TrafficRecord, m domain.Metric) float64 {
	switch m {
	case domain.MetricSessions:
		return r.Sessions
	case domain.MetricTotalUsers:
		return r.TotalUsers
	case domain.MetricNewUsers:
		return r.NewUsers
	case domain.MetricConversions:
		return r.Conversions
	case domain.MetricTotalRevenue:
		return r.TotalRevenue
	case domain.MetricEngagementRate:
		return r.EngagementRate
	case domain.MetricBounceRate:
		return r.BounceRate
	case domain.MetricAvgSessionDuration:
		return r.AvgSessionDuration
	}
	return 0
}
