package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// RegistryConfig configures the probe registry.
type RegistryConfig struct {
	// Timeout bounds a full sweep across all probes.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxConcurrent bounds how many probes run at once. Probes already
	// pace themselves per host, so this only matters with many
	// distinct upstreams.
	// Default: 4
	MaxConcurrent int
}

// Registry holds upstream probes and runs them as a group.
type Registry struct {
	config   RegistryConfig
	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewRegistry creates a probe registry.
func NewRegistry(config ...RegistryConfig) *Registry {
	cfg := RegistryConfig{
		Timeout:       30 * time.Second,
		MaxConcurrent: 4,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Timeout <= 0 {
			cfg.Timeout = 30 * time.Second
		}
		if cfg.MaxConcurrent <= 0 {
			cfg.MaxConcurrent = 4
		}
	}

	return &Registry{
		config:   cfg,
		checkers: make(map[string]Checker),
	}
}

// Register adds a probe. Re-registering a name replaces the probe but
// keeps its position.
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	if _, exists := r.checkers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.checkers[name] = checker
}

// CheckerNames returns registered probe names in registration order.
func (r *Registry) CheckerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Check runs one named probe.
func (r *Registry) Check(ctx context.Context, name string) (Result, error) {
	r.mu.RLock()
	checker, ok := r.checkers[name]
	r.mu.RUnlock()

	if !ok {
		return Result{}, ErrCheckerNotFound
	}
	return checker.Check(ctx), nil
}

// CheckAll runs every registered probe concurrently and returns the
// results keyed by probe name. A probe that overruns the sweep budget
// reports unhealthy with the context error.
func (r *Registry) CheckAll(ctx context.Context) (map[string]Result, error) {
	r.mu.RLock()
	checkers := make([]Checker, 0, len(r.order))
	for _, name := range r.order {
		checkers = append(checkers, r.checkers[name])
	}
	r.mu.RUnlock()

	if len(checkers) == 0 {
		return nil, ErrNoCheckers
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	var mu sync.Mutex
	results := make(map[string]Result, len(checkers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.MaxConcurrent)
	for _, checker := range checkers {
		g.Go(func() error {
			result := checker.Check(ctx)
			mu.Lock()
			results[checker.Name()] = result
			mu.Unlock()
			return nil
		})
	}
	// Probes report failure through their Result, never through the
	// group error.
	_ = g.Wait()

	return results, nil
}

// OverallStatus reduces results to one status: any unhealthy probe
// makes the whole set unhealthy, otherwise any degraded probe makes
// it degraded.
func OverallStatus(results map[string]Result) Status {
	status := StatusHealthy
	for _, result := range results {
		switch result.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
