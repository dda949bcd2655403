package collect

import (
	"context"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

// Collector fetches the raw traffic rows for one period from a data source.
// Implementations exist for the live GA4 Data API and for stored snapshots.
type Collector interface {
	// Property returns the GA4 property the collector is bound to.
	Property() string
	// CollectPeriod fetches every row set the analysis needs for one period.
	CollectPeriod(ctx context.Context, dr domain.DateRange) (domain.PeriodData, error)
}
