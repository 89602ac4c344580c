package health

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/trackops/transport"
)

// Status is the probed state of an upstream.
type Status int

const (
	// StatusHealthy indicates the upstream answered an authenticated read.
	StatusHealthy Status = iota
	// StatusDegraded indicates the upstream is reachable but throttling.
	StatusDegraded
	// StatusUnhealthy indicates the upstream is unreachable or rejecting
	// credentials.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one probe.
type Result struct {
	// Status is the probed state.
	Status Status

	// Message provides context about the status.
	Message string

	// Duration is how long the probe took, including pacing waits.
	Duration time.Duration

	// Timestamp is when the probe completed.
	Timestamp time.Time

	// Error is the classified error when the probe failed.
	Error error
}

// Checker is a single upstream probe.
type Checker interface {
	// Name identifies the upstream, e.g. "toggl".
	Name() string

	// Check probes the upstream and returns the result.
	Check(ctx context.Context) Result
}

// UpstreamChecker probes an upstream through its client's ping
// operation and maps the error classification onto a status.
type UpstreamChecker struct {
	name string
	ping func(context.Context) error
}

// NewUpstreamChecker wraps a client ping. The ping should be a cheap
// authenticated read.
func NewUpstreamChecker(name string, ping func(context.Context) error) *UpstreamChecker {
	return &UpstreamChecker{name: name, ping: ping}
}

// Name identifies the upstream.
func (c *UpstreamChecker) Name() string {
	return c.name
}

// Check probes the upstream. Rate limiting degrades rather than fails:
// the upstream is alive and the credential works, it is just busy.
func (c *UpstreamChecker) Check(ctx context.Context) Result {
	start := time.Now()
	err := c.ping(ctx)
	result := Result{
		Duration:  time.Since(start),
		Timestamp: time.Now(),
	}

	switch {
	case err == nil:
		result.Status = StatusHealthy
		result.Message = "upstream reachable"
	case transport.IsRateLimited(err):
		result.Status = StatusDegraded
		result.Message = "upstream throttling"
		result.Error = err
	case transport.IsAuthentication(err):
		result.Status = StatusUnhealthy
		result.Message = "credentials rejected"
		result.Error = err
	case transport.IsCanceled(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The probe did not finish, typically because the sweep budget
		// ran out. Do not blame the upstream for it.
		result.Status = StatusUnhealthy
		result.Message = "probe canceled"
		result.Error = err
	default:
		result.Status = StatusUnhealthy
		result.Message = "upstream unreachable"
		result.Error = err
	}
	return result
}
