// Package health probes the reachability of the upstream APIs behind
// the typed clients.
//
// An UpstreamChecker wraps a client's Ping and maps the classified
// error taxonomy onto a health status: authentication failures and
// hard outages are unhealthy, rate limiting is degraded. A Registry
// runs all registered probes concurrently and reduces them to one
// overall status, for use behind readiness endpoints or as a startup
// credential check.
//
// Probes go through the same pacing gate as normal traffic, so a
// health sweep never bursts an upstream.
package health
