package api

import "time"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityPositive Severity = "positive"
)

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

// SessionsPct is omitted when sessions grew from a zero baseline, since no
// finite percentage describes that.
type Alert struct {
	Severity    Severity `json:"severity"`
	Subject     string   `json:"subject"`
	SessionsPct *float64 `json:"sessions_pct,omitempty"`
	Message     string   `json:"message"`
}

type ReportSection struct {
	Title   string                   `json:"title"`
	Summary map[string]interface{}   `json:"summary,omitempty"`
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
	Alert   *Alert                   `json:"alert,omitempty"`
}

type Report struct {
	Title          string          `json:"title"`
	Property       string          `json:"property"`
	CurrentPeriod  TimePeriod      `json:"current_period"`
	PreviousPeriod TimePeriod      `json:"previous_period"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Sections       []ReportSection `json:"sections"`
}

type Property struct {
	Name       string `json:"name"`
	PropertyID string `json:"property_id"`
}

type Run struct {
	ID         string    `json:"id"`
	Property   string    `json:"property"`
	RangeStart time.Time `json:"range_start"`
	RangeEnd   time.Time `json:"range_end"`
	CreatedAt  time.Time `json:"created_at"`
}
