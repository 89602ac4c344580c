package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("no log output")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", line, err)
	}
	return entry
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "request succeeded",
		Field{Key: "status", Value: 200},
	)

	entry := decodeLogLine(t, &buf)
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["msg"] != "request succeeded" {
		t.Errorf("msg = %v, want request succeeded", entry["msg"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if entry["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug(context.Background(), "noise")
	logger.Info(context.Background(), "noise")
	if buf.Len() != 0 {
		t.Errorf("below-level output = %q, want none", buf.String())
	}

	logger.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Error("warn line dropped at warn level")
	}
}

func TestLogger_RedactsCredentialFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "auth configured",
		Field{Key: "token", Value: "hunter2"},
		Field{Key: "api_key", Value: "k-123"},
		Field{Key: "host", Value: "api.example.com"},
	)

	out := buf.String()
	if strings.Contains(out, "hunter2") || strings.Contains(out, "k-123") {
		t.Errorf("output leaked credentials: %s", out)
	}

	entry := decodeLogLine(t, &buf)
	if entry["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entry["token"])
	}
	if entry["host"] != "api.example.com" {
		t.Errorf("host = %v, want api.example.com", entry["host"])
	}
}

func TestLogger_WithCall(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	called := logger.WithCall(CallMeta{
		Service:   "toggl",
		Resource:  "time_entry",
		Operation: "create",
	})
	called.Info(context.Background(), "dispatching")

	entry := decodeLogLine(t, &buf)
	if entry["api.service"] != "toggl" {
		t.Errorf("api.service = %v, want toggl", entry["api.service"])
	}
	if entry["api.resource"] != "time_entry" {
		t.Errorf("api.resource = %v, want time_entry", entry["api.resource"])
	}
	if entry["api.operation"] != "create" {
		t.Errorf("api.operation = %v, want create", entry["api.operation"])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
