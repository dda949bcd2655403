package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/seo-tools/traffic-atlas/pkg/services/collect"
	"github.com/seo-tools/traffic-atlas/pkg/services/config"
	"github.com/seo-tools/traffic-atlas/pkg/services/ga4"
	"github.com/seo-tools/traffic-atlas/pkg/store/duckdb/snapshot"
)

type Controller interface {
	Start(ctx context.Context, property string) error
	Cancel(ctx context.Context, property string) error
}

type refreshDescriptor struct {
	cancelFunc context.CancelFunc
	runner     *Runner
}

type DefaultController struct {
	properties config.Registry
	collectors collect.Registry
	db         *sql.DB
	snapshots  snapshot.Store

	mu        sync.Mutex
	refreshes map[string]refreshDescriptor
}

func NewController(
	db *sql.DB,
	properties config.Registry,
	collectors collect.Registry,
	snapshots snapshot.Store,
) *DefaultController {
	ctrl := &DefaultController{
		db:         db,
		properties: properties,
		collectors: collectors,
		snapshots:  snapshots,
		refreshes:  make(map[string]refreshDescriptor),
	}

	return ctrl
}

// Init starts a refresh loop for every property in the registry.
func (ctrl *DefaultController) Init(ctx context.Context) error {
	names, err := ctrl.properties.GetProperties(ctx)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := ctrl.Start(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (ctrl *DefaultController) Start(ctx context.Context, property string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if _, ok := ctrl.refreshes[property]; ok {
		return fmt.Errorf("refresh already running: %s", property)
	}

	entry, err := ctrl.properties.GetProperty(ctx, property)
	if err != nil {
		return err
	}
	profile, err := ga4.LoadConfig(entry.ProfilePath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	collector, err := ctrl.collectors.Create(ctx, "ga4", entry.ProfilePath)
	if err != nil {
		cancel()
		return err
	}

	runner := NewRunner(property, profile.AnalysisConfig(), collector, ctrl.db, ctrl.snapshots)
	ctrl.refreshes[property] = refreshDescriptor{
		cancelFunc: cancel,
		runner:     runner,
	}

	go runner.Run(ctx)
	return nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, property string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.refreshes[property]
	if !ok {
		return fmt.Errorf("refresh not running: %s", property)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.refreshes, property)
	return nil
}
