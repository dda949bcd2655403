package ga4

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
)

const landingPageLimit = 20

// Collector fetches traffic rows from the GA4 Data API for one property.
type Collector struct {
	svc *analyticsdata.Service
	cfg Config
}

// CollectorFactory builds a live GA4 collector from a profile path.
func CollectorFactory(ctx context.Context, profilePath string) (collect.Collector, error) {
	cfg, err := LoadConfig(profilePath)
	if err != nil {
		return nil, err
	}
	return NewCollector(ctx, *cfg)
}

func NewCollector(ctx context.Context, cfg Config) (*Collector, error) {
	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GA4 credentials: %w", err)
	}

	svc, err := analyticsdata.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data service: %w", err)
	}
	return &Collector{svc: svc, cfg: cfg}, nil
}

func (c *Collector) Property() string {
	return c.cfg.PropertyID
}

// CollectPeriod runs the three report queries of one period: organic traffic
// grouped by device and by source/medium, top landing pages, and the
// channel-group rows the organic search comparison is built from.
func (c *Collector) CollectPeriod(ctx context.Context, dr domain.DateRange) (domain.PeriodData, error) {
	logger := zerolog.Ctx(ctx)
	data := domain.PeriodData{Traffic: make(map[domain.DimensionAxis][]domain.TrafficRow)}

	organic := organicFilter(c.cfg.OrganicSources)
	for _, axis := range []domain.DimensionAxis{domain.AxisDeviceCategory, domain.AxisSourceMedium} {
		rows, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
			DateRanges:      []*analyticsdata.DateRange{dateRange(dr)},
			Dimensions:      []*analyticsdata.Dimension{{Name: string(axis)}},
			Metrics:         allMetrics(),
			DimensionFilter: organic,
			OrderBys:        []*analyticsdata.OrderBy{sessionsDesc()},
		})
		if err != nil {
			return domain.PeriodData{}, fmt.Errorf("failed to fetch %s traffic: %w", axis, err)
		}
		data.Traffic[axis] = rows
		logger.Info().Str("axis", string(axis)).Int("rows", len(rows)).Msg("traffic fetched")
	}

	landing, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{dateRange(dr)},
		Dimensions: []*analyticsdata.Dimension{{Name: string(domain.AxisLandingPage)}},
		Metrics: []*analyticsdata.Metric{
			{Name: string(domain.MetricSessions)},
			{Name: string(domain.MetricTotalUsers)},
			{Name: string(domain.MetricBounceRate)},
		},
		DimensionFilter: organic,
		OrderBys:        []*analyticsdata.OrderBy{sessionsDesc()},
		Limit:           landingPageLimit,
	})
	if err != nil {
		return domain.PeriodData{}, fmt.Errorf("failed to fetch landing pages: %w", err)
	}
	data.Traffic[domain.AxisLandingPage] = landing

	channels, err := c.runReport(ctx, &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{dateRange(dr)},
		Dimensions: []*analyticsdata.Dimension{{Name: "sessionDefaultChannelGroup"}},
		Metrics:    allMetrics(),
		DimensionFilter: &analyticsdata.FilterExpression{
			Filter: exactMatch("sessionDefaultChannelGroup", "Organic Search"),
		},
	})
	if err != nil {
		return domain.PeriodData{}, fmt.Errorf("failed to fetch channel data: %w", err)
	}
	data.Channels = channels

	return data, nil
}

func (c *Collector) runReport(ctx context.Context, req *analyticsdata.RunReportRequest) ([]domain.TrafficRow, error) {
	resp, err := c.svc.Properties.RunReport("properties/"+c.cfg.PropertyID, req).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return mapRows(resp), nil
}

// mapRows flattens an API response into raw traffic rows. Metric values stay
// strings; the aggregation boundary owns parsing and validation.
func mapRows(resp *analyticsdata.RunReportResponse) []domain.TrafficRow {
	rows := make([]domain.TrafficRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		if len(r.DimensionValues) == 0 {
			continue
		}
		row := domain.TrafficRow{
			Dimension: r.DimensionValues[0].Value,
			Metrics:   make(map[domain.Metric]string, len(r.MetricValues)),
		}
		for i, mv := range r.MetricValues {
			if i >= len(resp.MetricHeaders) {
				break
			}
			row.Metrics[domain.Metric(resp.MetricHeaders[i].Name)] = mv.Value
		}
		rows = append(rows, row)
	}
	return rows
}

// organicFilter builds the OR group of exact source/medium matches that
// scopes traffic queries to unpaid search.
func organicFilter(sources []string) *analyticsdata.FilterExpression {
	expressions := make([]*analyticsdata.FilterExpression, 0, len(sources))
	for _, source := range sources {
		expressions = append(expressions, &analyticsdata.FilterExpression{
			Filter: exactMatch(string(domain.AxisSourceMedium), source),
		})
	}
	return &analyticsdata.FilterExpression{
		OrGroup: &analyticsdata.FilterExpressionList{Expressions: expressions},
	}
}

func dateRange(dr domain.DateRange) *analyticsdata.DateRange {
	return &analyticsdata.DateRange{
		StartDate: dr.Start,
		EndDate:   dr.End,
	}
}

func exactMatch(field, value string) *analyticsdata.Filter {
	return &analyticsdata.Filter{
		FieldName: field,
		StringFilter: &analyticsdata.StringFilter{
			MatchType: "EXACT",
			Value:     value,
		},
	}
}

func allMetrics() []*analyticsdata.Metric {
	metrics := make([]*analyticsdata.Metric, 0, len(domain.Metrics()))
	for _, m := range domain.Metrics() {
		metrics = append(metrics, &analyticsdata.Metric{Name: string(m)})
	}
	return metrics
}

func sessionsDesc() *analyticsdata.OrderBy {
	return &analyticsdata.OrderBy{
		Metric: &analyticsdata.MetricOrderBy{MetricName: string(domain.MetricSessions)},
		Desc:   true,
	}
}
