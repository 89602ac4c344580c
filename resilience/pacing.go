package resilience

import (
	"context"
	"sync"
	"time"
)

// PacingConfig configures the pacing gate.
type PacingConfig struct {
	// MinInterval is the minimum spacing between dispatched requests to
	// one host.
	// Default: 1 second
	MinInterval time.Duration
}

// PacingGate enforces a minimum interval between outbound requests per
// upstream host, process-wide. One gate instance is shared by every
// client targeting the same hosts; the per-host next-slot timestamp is
// the only cross-operation mutable state in the system.
//
// Grants are issued in arrival order: each caller atomically reserves
// the next free dispatch slot under the gate's lock, then sleeps until
// its slot arrives. Reserved slots never regress, so the gap between
// any two consecutive grants for a host is at least MinInterval even
// under concurrent callers.
type PacingGate struct {
	config PacingConfig

	mu       sync.Mutex
	nextSlot map[string]time.Time
}

// NewPacingGate creates a new pacing gate.
func NewPacingGate(config PacingConfig) *PacingGate {
	if config.MinInterval <= 0 {
		config.MinInterval = time.Second
	}

	return &PacingGate{
		config:   config,
		nextSlot: make(map[string]time.Time),
	}
}

// Acquire blocks until at least MinInterval has elapsed since the last
// granted acquisition for host. It never fails on its own; the only
// error it can return is ctx.Err() when the caller gives up waiting.
// A cancelled wait leaves its reserved slot unused rather than handing
// it to a later arrival, which keeps the spacing guarantee intact.
func (g *PacingGate) Acquire(ctx context.Context, host string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	now := time.Now()
	slot := g.nextSlot[host]
	if slot.Before(now) {
		slot = now
	}
	g.nextSlot[host] = slot.Add(g.config.MinInterval)
	g.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MinInterval returns the configured minimum inter-request interval.
func (g *PacingGate) MinInterval() time.Duration {
	return g.config.MinInterval
}
