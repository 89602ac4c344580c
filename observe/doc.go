// Package observe provides observability primitives for upstream API calls.
//
// It is a pure instrumentation library: no pacing, no transport, no I/O
// beyond exporter setup. The transport and resource clients wire an
// Observer in and report one span, one metric sample, and structured log
// lines per upstream call.
package observe
