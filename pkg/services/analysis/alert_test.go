package analysis

import (
	"testing"

	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     domain.Severity
	}{
		{"exactly -20 is critical", 8000, 10000, domain.SeverityCritical},
		{"deep drop is critical", 5000, 10000, domain.SeverityCritical},
		{"just above -20 is warning", 8000.1, 10000, domain.SeverityWarning},
		{"small drop is warning", 9999, 10000, domain.SeverityWarning},
		{"flat is positive", 10000, 10000, domain.SeverityPositive},
		{"growth is positive", 12000, 10000, domain.SeverityPositive},
		{"both zero is positive", 0, 0, domain.SeverityPositive},
		{"growth from zero is positive", 500, 0, domain.SeverityPositive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := Compare(record(OrganicSearchChannel, tc.current), record(OrganicSearchChannel, tc.previous))
			alert := Classify(row)
			assert.Equal(t, tc.want, alert.Severity)
			assert.Equal(t, "Organic Search sessions", alert.Subject)
			assert.NotEmpty(t, alert.Message)
		})
	}
}

func TestClassify_CarriesSessionsPct(t *testing.T) {
	row := Compare(record(OrganicSearchChannel, 7500), record(OrganicSearchChannel, 10000))
	alert := Classify(row)

	assert.Equal(t, domain.SeverityCritical, alert.Severity)
	assert.InDelta(t, -25.0, alert.SessionsPct, 1e-9)
	assert.Contains(t, alert.Message, "25.0%")
}
