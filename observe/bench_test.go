package observe

import (
	"context"
	"io"
	"testing"
	"time"
)

// BenchmarkLogger_Info measures the structured logging hot path,
// including JSON encoding, with the write discarded.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "api call completed",
			Field{Key: "duration_ms", Value: 42},
			Field{Key: "attempts", Value: 1},
		)
	}
}

// BenchmarkLogger_Info_BelowLevel measures the early return when the
// entry is filtered by level.
func BenchmarkLogger_Info_BelowLevel(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "api call completed")
	}
}

// BenchmarkLogger_Info_Redacted measures the redaction path for
// credential-shaped field keys.
func BenchmarkLogger_Info_Redacted(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "configured client",
			Field{Key: "token", Value: "tok-123"},
		)
	}
}

// BenchmarkLogger_WithCall measures deriving a call-scoped logger and
// emitting through it.
func BenchmarkLogger_WithCall(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	meta := CallMeta{Service: "toggl", Resource: "time_entry", Operation: "create"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.WithCall(meta).Info(ctx, "api call completed")
	}
}

// BenchmarkCallMeta_SpanName measures span name construction.
func BenchmarkCallMeta_SpanName(b *testing.B) {
	meta := CallMeta{Service: "trello", Resource: "card", Operation: "update"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = meta.SpanName()
	}
}

// BenchmarkNoopMetrics_RecordCall measures the disabled-telemetry path
// clients take when metrics are off.
func BenchmarkNoopMetrics_RecordCall(b *testing.B) {
	m := NewNoopMetrics()
	meta := CallMeta{Service: "toggl", Operation: "list"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.RecordCall(ctx, meta, 5*time.Millisecond, 1, nil)
	}
}
