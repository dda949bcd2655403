package report

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/seo-tools/traffic-atlas/pkg/adapters"
	"github.com/seo-tools/traffic-atlas/pkg/models/api"
	"github.com/seo-tools/traffic-atlas/pkg/services/analysis"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/services/config"
	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"
)

const defaultSource = "ga4"

type Handler struct {
	properties config.Registry
	collectors collect.Registry
	snapshots  snapshot.Store
}

func NewHandler(properties config.Registry, collectors collect.Registry, snapshots snapshot.Store) *Handler {
	return &Handler{
		properties: properties,
		collectors: collectors,
		snapshots:  snapshots,
	}
}

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	names, err := h.properties.GetProperties(ctx)
	if err != nil {
		http.Error(w, "failed to list properties", http.StatusInternalServerError)
		return
	}

	response := make([]api.Property, 0, len(names))
	for _, name := range names {
		property, err := h.properties.GetProperty(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("property", name).Msg("skipping misconfigured property")
			continue
		}
		response = append(response, api.Property{Name: property.Name, PropertyID: property.PropertyID})
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode properties")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "property")

	property, err := h.properties.GetProperty(ctx, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	profile, err := ga4.LoadConfig(property.ProfilePath)
	if err != nil {
		logger.Error().Err(err).Str("property", name).Msg("failed to load analysis profile")
		http.Error(w, "failed to load analysis profile", http.StatusInternalServerError)
		return
	}
	cfg := profile.AnalysisConfig()

	// Query parameters override the profile's date ranges.
	q := r.URL.Query()
	if v := q.Get("current_start"); v != "" {
		cfg.Current.Start = v
	}
	if v := q.Get("current_end"); v != "" {
		cfg.Current.End = v
	}
	if v := q.Get("previous_start"); v != "" {
		cfg.Previous.Start = v
	}
	if v := q.Get("previous_end"); v != "" {
		cfg.Previous.End = v
	}
	if err := cfg.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	source := q.Get("source")
	if source == "" {
		source = defaultSource
	}
	collector, err := h.collectors.Create(ctx, source, property.ProfilePath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	current, err := collector.CollectPeriod(ctx, cfg.Current)
	if err != nil {
		logger.Error().Err(err).Str("property", name).Msg("failed to collect current period")
		http.Error(w, "failed to collect current period", http.StatusBadGateway)
		return
	}
	previous, err := collector.CollectPeriod(ctx, cfg.Previous)
	if err != nil {
		logger.Error().Err(err).Str("property", name).Msg("failed to collect previous period")
		http.Error(w, "failed to collect previous period", http.StatusBadGateway)
		return
	}

	report, err := analysis.Analyze(ctx, cfg, current, previous)
	if err != nil {
		logger.Error().Err(err).Str("property", name).Msg("analysis failed")
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapReportDomainToApi(report)); err != nil {
		logger.Error().
			Err(err).
			Str("property", name).
			Msg("failed to encode report")
	}
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "property")

	property, err := h.properties.GetProperty(ctx, name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	runs, err := h.snapshots.ListRuns(ctx, property.PropertyID)
	if err != nil {
		logger.Error().Err(err).Str("property", name).Msg("failed to list runs")
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	response := make([]api.Run, 0, len(runs))
	for _, run := range runs {
		response = append(response, adapters.MapRunStoreToApi(run))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Str("property", name).
			Msg("failed to encode runs")
	}
}
