package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrVisibilityTimeout is returned when a write could not be verified
	// visible within the guard's wait budget. The write itself likely
	// succeeded; only the verifying read failed to catch up.
	ErrVisibilityTimeout = errors.New("resilience: write not visible within wait budget")
)
