package adapters

import (
	"maps"
	"math"

	"github.com/seo-tools/traffic-atlas/pkg/models/api"
	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/seo-tools/traffic-atlas/pkg/models/store"
)

func MapReportDomainToApi(report *domain.Report) api.Report {
	apiReport := api.Report{
		Title:          report.Title,
		Property:       report.Property,
		CurrentPeriod:  MapTimePeriodDomainToApi(report.CurrentPeriod),
		PreviousPeriod: MapTimePeriodDomainToApi(report.PreviousPeriod),
		GeneratedAt:    report.GeneratedAt,
		Sections:       []api.ReportSection{},
	}

	for _, s := range report.Sections {
		apiReport.Sections = append(apiReport.Sections, MapReportSectionDomainToApi(s))
	}

	return apiReport
}

func MapReportSectionDomainToApi(section domain.ReportSection) api.ReportSection {
	apiSection := api.ReportSection{
		Title:   section.Title,
		Summary: maps.Clone(section.Summary),
		Columns: section.Columns,
		Rows:    make([]map[string]interface{}, 0, len(section.Rows)),
		Alert:   MapAlertDomainToApi(section.Alert),
	}

	for _, row := range section.Rows {
		apiSection.Rows = append(apiSection.Rows, map[string]interface{}(row))
	}

	return apiSection
}

func MapAlertDomainToApi(alert *domain.Alert) *api.Alert {
	if alert == nil {
		return nil
	}
	apiAlert := &api.Alert{
		Severity: api.Severity(alert.Severity),
		Subject:  alert.Subject,
		Message:  alert.Message,
	}
	if !math.IsInf(alert.SessionsPct, 0) {
		pct := alert.SessionsPct
		apiAlert.SessionsPct = &pct
	}
	return apiAlert
}

func MapTimePeriodDomainToApi(period domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{
		Start:    period.Start,
		End:      period.End,
		Duration: period.Duration,
	}
}

func MapRunStoreToApi(run store.Run) api.Run {
	return api.Run{
		ID:         run.ID,
		Property:   run.Property,
		RangeStart: run.RangeStart,
		RangeEnd:   run.RangeEnd,
		CreatedAt:  run.CreatedAt,
	}
}
