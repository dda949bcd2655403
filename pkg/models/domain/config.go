package domain

import (
	"fmt"
	"time"
)

// DimensionAxis names a grouping dimension of the traffic analysis. Values
// match the GA4 Data API dimension names.
type DimensionAxis string

const (
	AxisDeviceCategory DimensionAxis = "deviceCategory"
	AxisSourceMedium   DimensionAxis = "sessionSourceMedium"
	AxisLandingPage    DimensionAxis = "landingPage"
)

// DefaultAxes returns the dimension axes every report covers, in report
// section order.
func DefaultAxes() []DimensionAxis {
	return []DimensionAxis{AxisDeviceCategory, AxisSourceMedium, AxisLandingPage}
}

// DateRange is an inclusive ISO 8601 date range (YYYY-MM-DD).
type DateRange struct {
	Start string
	End   string
}

func (d DateRange) Validate() error {
	start, err := time.Parse("2006-01-02", d.Start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", d.Start, err)
	}
	end, err := time.Parse("2006-01-02", d.End)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", d.End, err)
	}
	if end.Before(start) {
		return fmt.Errorf("date range ends (%s) before it starts (%s)", d.End, d.Start)
	}
	return nil
}

// Period converts the range into a report time period.
func (d DateRange) Period() TimePeriod {
	start, _ := time.Parse("2006-01-02", d.Start)
	end, _ := time.Parse("2006-01-02", d.End)
	return TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}

// AnalysisConfig is the immutable per-run configuration of the pipeline.
// It is passed by value into the entry points; nothing in the core reads
// global state.
type AnalysisConfig struct {
	PropertyID     string
	OrganicSources []string
	Current        DateRange
	Previous       DateRange
	Axes           []DimensionAxis
	OutputDir      string
}

func (c AnalysisConfig) Validate() error {
	if c.PropertyID == "" {
		return fmt.Errorf("property ID is required")
	}
	if err := c.Current.Validate(); err != nil {
		return fmt.Errorf("current period: %w", err)
	}
	if err := c.Previous.Validate(); err != nil {
		return fmt.Errorf("previous period: %w", err)
	}
	return nil
}

// PeriodData is everything the fetch layer hands to the analysis core for
// one period: traffic rows per dimension axis plus the channel rows the
// organic search comparison is built from.
type PeriodData struct {
	Traffic  map[DimensionAxis][]TrafficRow
	Channels []TrafficRow
}
