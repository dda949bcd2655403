package domain

import "time"

// Report represents a complete comparative traffic report
type Report struct {
	Title          string
	Property       string
	CurrentPeriod  TimePeriod
	PreviousPeriod TimePeriod
	GeneratedAt    time.Time
	Sections       []ReportSection
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents one logical table in the report. Row order is
// meaningful and preserved by every renderer.
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Columns []string
	Rows    []ReportRow
	Alert   *Alert
}

// ReportRow maps column name to a cell value (string, number or a
// pre-formatted percentage/currency string). Column order comes from the
// owning section.
type ReportRow map[string]interface{}

// OrganicAlert returns the alert attached to the organic search section, or
// nil when the report carries none.
func (r *Report) OrganicAlert() *Alert {
	for _, s := range r.Sections {
		if s.Alert != nil {
			return s.Alert
		}
	}
	return nil
}
