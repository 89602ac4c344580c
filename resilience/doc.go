// Package resilience provides the timing and failure-handling discipline
// for calls against a rate-limited upstream API.
//
// # Components
//
//   - Pacing Gate: enforces a minimum interval between outbound requests
//     to one upstream host, process-wide, granting waiters in arrival
//     order.
//
//   - Retry: re-runs failed operations with exponential backoff and
//     jitter, driven by an error classifier so only retry-eligible
//     failures are repeated.
//
//   - Circuit Breaker: stops dispatching to an upstream that keeps
//     failing, giving it time to recover.
//
//   - Visibility Guard: bridges eventual consistency by re-polling a
//     read until a just-accepted write becomes visible, within a bounded
//     wait.
//
// # Composition
//
// The Executor chains the pieces in the order the pacing guarantee
// requires: retry wraps the circuit breaker, which wraps the pacing
// gate, which wraps the actual HTTP exchange. Every attempt, including
// retries and consistency polls, re-passes the gate, so the minimum
// inter-request interval holds across all traffic to a host:
//
//	gate := resilience.NewPacingGate(resilience.PacingConfig{MinInterval: time.Second})
//	exec := resilience.NewExecutor(
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 4})),
//	    resilience.WithPacing(gate, "api.track.toggl.com"),
//	)
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return callUpstream(ctx)
//	})
package resilience
