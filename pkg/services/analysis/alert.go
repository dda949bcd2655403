package analysis

import (
	"fmt"
	"math"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
)

// OrganicSearchChannel is the GA4 default channel grouping name for unpaid
// search traffic.
const OrganicSearchChannel = "Organic Search"

// criticalDropPct is the sessions decline, in percent, at which the alert
// escalates from warning to critical. The boundary value itself is critical.
const criticalDropPct = -20.0

// Classify assigns an alert severity from the organic search sessions trend.
// First match wins: a drop of 20% or more is critical, any other drop is a
// warning, everything else (including growth from a zero baseline) is
// positive.
func Classify(row domain.ComparisonRow) domain.Alert {
	pct := row.Deltas[domain.MetricSessions].Pct
	alert := domain.Alert{
		Subject:     fmt.Sprintf("%s sessions", OrganicSearchChannel),
		SessionsPct: pct,
	}

	switch {
	case pct <= criticalDropPct:
		alert.Severity = domain.SeverityCritical
		alert.Message = fmt.Sprintf("organic sessions dropped %.1f%%, investigation needed", math.Abs(pct))
	case pct < 0:
		alert.Severity = domain.SeverityWarning
		alert.Message = fmt.Sprintf("organic sessions down %.1f%%, monitoring recommended", math.Abs(pct))
	case math.IsInf(pct, 1):
		alert.Severity = domain.SeverityPositive
		alert.Message = "organic sessions grew from a zero baseline"
	default:
		alert.Severity = domain.SeverityPositive
		alert.Message = fmt.Sprintf("organic sessions up %.1f%%", pct)
	}
	return alert
}
