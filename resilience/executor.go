package resilience

import (
	"context"
	"time"
)

// Executor composes the resilience pieces around one upstream call.
type Executor struct {
	retry   *Retry
	circuit *CircuitBreaker
	gate    *PacingGate
	host    string
	budget  time.Duration
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a new resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRetry adds retry logic to the executor.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithCircuitBreaker adds a circuit breaker to the executor.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		e.circuit = cb
	}
}

// WithPacing routes every attempt through gate for the given host.
func WithPacing(gate *PacingGate, host string) ExecutorOption {
	return func(e *Executor) {
		e.gate = gate
		e.host = host
	}
}

// WithOperationBudget bounds the whole operation, pacing waits and
// retries included, with a deadline. The caller's own context deadline
// still applies if tighter.
func WithOperationBudget(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.budget = d
	}
}

// Execute runs the operation through the configured chain.
//
// The chain, outermost first, is:
//  1. operation budget (if configured) - bounds the whole call
//  2. retry - re-runs eligible failures
//  3. circuit breaker - refuses calls to a failing upstream
//  4. pacing gate - spaces the dispatch
//
// The pacing gate sits innermost so retried attempts are paced exactly
// like first attempts.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	run := op

	if e.gate != nil {
		inner := run
		gate, host := e.gate, e.host
		run = func(ctx context.Context) error {
			if err := gate.Acquire(ctx, host); err != nil {
				return err
			}
			return inner(ctx)
		}
	}

	if e.circuit != nil {
		inner := run
		cb := e.circuit
		run = func(ctx context.Context) error {
			return cb.Execute(ctx, inner)
		}
	}

	if e.retry != nil {
		inner := run
		r := e.retry
		run = func(ctx context.Context) error {
			return r.Execute(ctx, inner)
		}
	}

	if e.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.budget)
		defer cancel()
	}

	return run(ctx)
}
