package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seo-tools/traffic-atlas/pkg/adapters"
	"github.com/seo-tools/traffic-atlas/pkg/models/domain"
	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb"
	snapshotstore "github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"
)

var (
	storesMu sync.Mutex
	stores   = make(map[string]snapshotstore.Store)
)

// openStore returns the shared store for a database path. Collectors are
// created per command or request, so the underlying handle is opened once per
// path and reused instead of leaking one per Create.
func openStore(dbPath string) (snapshotstore.Store, error) {
	storesMu.Lock()
	defer storesMu.Unlock()

	if s, ok := stores[dbPath]; ok {
		return s, nil
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database %s: %w", dbPath, err)
	}
	s, err := snapshotstore.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	stores[dbPath] = s
	return s, nil
}

// Collector replays previously stored runs instead of hitting the GA4 API,
// so reports can be rebuilt offline.
type Collector struct {
	store    snapshotstore.Store
	property string
}

// CollectorFactory opens the profile's snapshot database and binds a replay
// collector to its property.
func CollectorFactory(_ context.Context, profilePath string) (collect.Collector, error) {
	cfg, err := ga4.LoadConfig(profilePath)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg.SnapshotDB)
	if err != nil {
		return nil, err
	}
	return NewCollector(store, cfg.PropertyID), nil
}

func NewCollector(store snapshotstore.Store, property string) *Collector {
	return &Collector{store: store, property: property}
}

func (c *Collector) Property() string {
	return c.property
}

func (c *Collector) CollectPeriod(ctx context.Context, dr domain.DateRange) (domain.PeriodData, error) {
	if err := dr.Validate(); err != nil {
		return domain.PeriodData{}, err
	}
	start, _ := time.Parse("2006-01-02", dr.Start)
	end, _ := time.Parse("2006-01-02", dr.End)

	run, err := c.store.FindRun(ctx, c.property, start, end)
	if err != nil {
		return domain.PeriodData{}, err
	}
	if run == nil {
		return domain.PeriodData{}, fmt.Errorf(
			"no stored run for property %s covering %s to %s", c.property, dr.Start, dr.End)
	}

	records, err := c.store.GetRecords(ctx, run.ID)
	if err != nil {
		return domain.PeriodData{}, err
	}
	return adapters.MapStoreRecordsToPeriodData(records), nil
}
