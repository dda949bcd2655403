package workflow

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seo-tools/traffic-atlas/pkg/adapters"
	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	storemodels "github.com/seo-tools/traffic-atlas/pkg/models/store"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"
)

// Runner keeps the snapshot store of one property fresh. On every refresh it
// stores a run for each configured period that the store does not cover yet.
type Runner struct {
	property  string
	cfg       domain.AnalysisConfig
	collector collect.Collector
	db        *sql.DB
	snapshots snapshot.Store
	done      chan struct{}
	progress  chan RunnerProgress
	config    RunnerConfig
}

type RunnerConfig struct {
	RefreshInterval time.Duration
	RetryInterval   time.Duration
}

type RunnerProgress struct {
	StoredRuns      int64
	LastRefreshedAt time.Time
}

func NewRunner(
	property string,
	cfg domain.AnalysisConfig,
	collector collect.Collector,
	db *sql.DB,
	snapshots snapshot.Store,
) *Runner {
	return &Runner{
		property:  property,
		cfg:       cfg,
		collector: collector,
		db:        db,
		snapshots: snapshots,
		done:      make(chan struct{}),
		progress:  make(chan RunnerProgress, 100),
		config: RunnerConfig{
			RefreshInterval: 6 * time.Hour,
			RetryInterval:   time.Minute,
		},
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("property", r.property).Logger()
	defer close(r.done)
	defer close(r.progress)

	storedRuns := int64(0)
	interval := time.Duration(0) // first refresh happens immediately
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("snapshot refresh stopped")
			return
		case <-time.After(interval):
			stored, err := r.refresh(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("snapshot refresh failed")
				interval = r.config.RetryInterval
				continue
			}

			storedRuns += stored
			// Progress is advisory; never block the loop on a slow or
			// absent consumer.
			select {
			case r.progress <- RunnerProgress{
				StoredRuns:      storedRuns,
				LastRefreshedAt: time.Now(),
			}:
			default:
			}
			interval = r.config.RefreshInterval
		}
	}
}

func (r *Runner) refresh(ctx context.Context) (int64, error) {
	stored := int64(0)
	for _, dr := range []domain.DateRange{r.cfg.Current, r.cfg.Previous} {
		period := dr.Period()

		existing, err := r.snapshots.FindRun(ctx, r.cfg.PropertyID, period.Start, period.End)
		if err != nil {
			return stored, err
		}
		if existing != nil {
			continue
		}

		data, err := r.collector.CollectPeriod(ctx, dr)
		if err != nil {
			return stored, err
		}

		runID := uuid.NewString()
		records, err := adapters.MapPeriodDataToStoreRecords(runID, data)
		if err != nil {
			return stored, err
		}

		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return stored, err
		}

		ctxWithTx := duckdb.WithTransaction(ctx, tx)
		err = r.snapshots.AddRun(ctxWithTx, storemodels.Run{
			ID:         runID,
			Property:   r.cfg.PropertyID,
			RangeStart: period.Start,
			RangeEnd:   period.End,
			CreatedAt:  time.Now().UTC(),
		}, records)
		if err != nil {
			_ = tx.Rollback()
			return stored, err
		}
		if err := tx.Commit(); err != nil {
			return stored, err
		}
		stored++
	}
	return stored, nil
}
