package domain

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityPositive Severity = "positive"
)

// Alert is the outcome of classifying the Organic Search sessions trend for
// one report run.
type Alert struct {
	Severity    Severity
	Subject     string
	SessionsPct float64
	Message     string
}
