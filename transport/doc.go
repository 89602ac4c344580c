// Package transport issues single HTTP exchanges against an upstream
// REST API and normalizes every failure into a classified Error.
//
// The transport owns exactly one request/response cycle: it applies the
// upstream's authentication scheme, enforces the per-request time
// budget, and hands back the raw body. It never parses response
// payloads and never retries - parsing belongs to the resource clients
// and retrying to the resilience layer.
//
// # Classification
//
// Outcomes map onto a fixed taxonomy (see Kind): 2xx succeeds, 401/403
// is an authentication failure, 404 a missing resource, 429 a retryable
// rate limit, other 4xx a validation failure, and 5xx, network faults,
// and exhausted request budgets are retryable transient failures.
// Caller cancellation surfaces as a non-retryable cancellation error.
package transport
