package resilience

import (
	"context"
	"time"
)

// VisibilityConfig configures the visibility guard.
type VisibilityConfig struct {
	// MaxWait is the total budget for the write to become visible.
	// Default: 10 seconds
	MaxWait time.Duration

	// PollInterval is the spacing between verification polls.
	// Default: 1 second
	PollInterval time.Duration
}

// VisibilityGuard verifies that an accepted write is reflected by a
// subsequent read on an eventually consistent upstream. It re-polls the
// read path until the caller's predicate holds or the wait budget runs
// out, at which point it reports ErrVisibilityTimeout instead of
// silently returning stale data.
//
// The guard owns only the schedule. The poll callback performs the
// actual read through the normal client path, so every poll passes the
// pacing gate like any other request.
type VisibilityGuard struct {
	config VisibilityConfig
}

// NewVisibilityGuard creates a new visibility guard.
func NewVisibilityGuard(config VisibilityConfig) *VisibilityGuard {
	// Apply defaults
	if config.MaxWait <= 0 {
		config.MaxWait = 10 * time.Second
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}

	return &VisibilityGuard{config: config}
}

// Await polls until poll reports done, poll fails, or MaxWait elapses.
// The first poll runs immediately; later polls are spaced PollInterval
// apart. A poll that would start at or past the deadline is not made,
// and Await returns ErrVisibilityTimeout.
func (g *VisibilityGuard) Await(ctx context.Context, poll func(context.Context) (bool, error)) error {
	deadline := time.Now().Add(g.config.MaxWait)

	for {
		done, err := poll(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		next := time.Now().Add(g.config.PollInterval)
		if !next.Before(deadline) {
			return ErrVisibilityTimeout
		}

		timer := time.NewTimer(g.config.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Config returns the guard configuration.
func (g *VisibilityGuard) Config() VisibilityConfig {
	return g.config
}
