package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seo-tools/traffic-atlas/pkg/adapters"
	htmlexport "github.com/seo-tools/traffic-atlas/pkg/export"
	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	storemodels "github.com/seo-tools/traffic-atlas/pkg/models/store"
	"github.com/seo-tools/traffic-atlas/pkg/runtime/terminal/export"
	"github.com/seo-tools/traffic-atlas/pkg/services/analysis"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	profilePath  string
	source       string
	saveSnapshot bool
	registry     collect.Registry
	reporter     *export.Reporter
}

func NewAnalyzeCmd(registry collect.Registry, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare organic traffic between two periods and export a report",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the analysis profile")
	cmd.Flags().StringVar(&ac.source, "source", "ga4", "Data source to collect from (ga4, snapshot)")
	cmd.Flags().BoolVar(&ac.saveSnapshot, "save-snapshot", false, "Persist the collected periods for offline replay")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
	defer cancel()
	logger := zerolog.Ctx(ctx)

	profile, err := ga4.LoadConfig(ac.profilePath)
	if err != nil {
		return err
	}
	cfg := profile.AnalysisConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	collector, err := ac.registry.Create(ctx, ac.source, ac.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create a collector for source %s: %w", ac.source, err)
	}

	current, err := collector.CollectPeriod(ctx, cfg.Current)
	if err != nil {
		return fmt.Errorf("failed to collect current period: %w", err)
	}
	previous, err := collector.CollectPeriod(ctx, cfg.Previous)
	if err != nil {
		return fmt.Errorf("failed to collect previous period: %w", err)
	}

	if ac.saveSnapshot {
		if err := ac.persistPeriods(ctx, profile, cfg, current, previous); err != nil {
			return err
		}
	}

	report, err := analysis.Analyze(ctx, cfg, current, previous)
	if err != nil {
		return err
	}

	htmlRenderer, err := htmlexport.NewHTMLRenderer()
	if err != nil {
		return err
	}
	htmlPath, err := htmlRenderer.WriteFile(cfg.OutputDir, report)
	if err != nil {
		return err
	}
	xlsxPath, err := htmlexport.NewExcelWriter().WriteFile(cfg.OutputDir, report)
	if err != nil {
		return err
	}
	logger.Info().
		Str("html", htmlPath).
		Str("xlsx", xlsxPath).
		Msg("report exported")

	return ac.reporter.Handle(report)
}

func (ac *AnalyzeCmd) persistPeriods(
	ctx context.Context,
	profile *ga4.Config,
	cfg domain.AnalysisConfig,
	current, previous domain.PeriodData,
) error {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: profile.SnapshotDB})
	if err != nil {
		return fmt.Errorf("failed to open snapshot database %s: %w", profile.SnapshotDB, err)
	}
	defer db.Close()

	store, err := snapshot.NewStore(db)
	if err != nil {
		return err
	}

	periods := []struct {
		dr   domain.DateRange
		data domain.PeriodData
	}{
		{cfg.Current, current},
		{cfg.Previous, previous},
	}
	for _, p := range periods {
		runID := uuid.NewString()
		records, err := adapters.MapPeriodDataToStoreRecords(runID, p.data)
		if err != nil {
			return err
		}
		run := storemodels.Run{
			ID:         runID,
			Property:   cfg.PropertyID,
			RangeStart: p.dr.Period().Start,
			RangeEnd:   p.dr.Period().End,
			CreatedAt:  time.Now().UTC(),
		}
		if err := store.AddRun(ctx, run, records); err != nil {
			return fmt.Errorf("failed to persist period %s to %s: %w", p.dr.Start, p.dr.End, err)
		}
	}
	return nil
}
