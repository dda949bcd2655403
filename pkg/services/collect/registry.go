package collect

import (
	"context"
	"fmt"
	"sync"
)

// CollectorFactory creates a Collector from a profile path.
type CollectorFactory func(ctx context.Context, profilePath string) (Collector, error)

// Registry manages data source collector factories
type Registry interface {
	// Register adds a new data source collector factory
	Register(source string, factory CollectorFactory) error
	// Create instantiates a collector for the specified source using the provided profile
	Create(ctx context.Context, source, profilePath string) (Collector, error)
	// ListSources returns a list of registered data sources
	ListSources() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]CollectorFactory
}

// NewRegistry creates a registry pre-populated with the given factories.
func NewRegistry(factories map[string]CollectorFactory) Registry {
	r := &registry{factories: make(map[string]CollectorFactory)}
	for source, factory := range factories {
		_ = r.Register(source, factory)
	}
	return r
}

func (r *registry) Register(source string, factory CollectorFactory) error {
	if source == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[source]; exists {
		return fmt.Errorf("source %q is already registered", source)
	}

	r.factories[source] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, source, profilePath string) (Collector, error) {
	r.mu.RLock()
	factory, exists := r.factories[source]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source %q is not registered", source)
	}

	return factory(ctx, profilePath)
}

func (r *registry) ListSources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.factories))
	for source := range r.factories {
		sources = append(sources, source)
	}
	return sources
}
