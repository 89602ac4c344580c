package observe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonwraymond/trackops/observe"
)

// ExampleCallMeta_SpanName demonstrates the deterministic span naming
// scheme shared by traces, metrics and logs.
func ExampleCallMeta_SpanName() {
	withResource := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "create"}
	withoutResource := observe.CallMeta{Service: "trello", Operation: "ping"}

	fmt.Println(withResource.SpanName())
	fmt.Println(withoutResource.SpanName())

	// Output:
	// api.call.toggl.time_entry.create
	// api.call.trello.ping
}

// ExampleNewLoggerWithWriter demonstrates structured logging with
// credential redaction. The timestamp varies, so the entry is decoded
// and individual fields are printed.
func ExampleNewLoggerWithWriter() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "client configured",
		observe.Field{Key: "workspace_id", Value: 42},
		observe.Field{Key: "token", Value: "tok-secret"},
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Println("level:", entry["level"])
	fmt.Println("msg:", entry["msg"])
	fmt.Println("workspace_id:", entry["workspace_id"])
	fmt.Println("token:", entry["token"])

	// Output:
	// level: info
	// msg: client configured
	// workspace_id: 42
	// token: [REDACTED]
}

// ExampleLogger_withCall demonstrates attaching call context so every
// entry carries the operation identity.
func ExampleLogger_withCall() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	callLogger := logger.WithCall(observe.CallMeta{
		Service:   "trello",
		Resource:  "card",
		Operation: "create",
	})
	callLogger.Info(context.Background(), "api call completed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Println("api.service:", entry["api.service"])
	fmt.Println("api.resource:", entry["api.resource"])
	fmt.Println("api.operation:", entry["api.operation"])

	// Output:
	// api.service: trello
	// api.resource: card
	// api.operation: create
}
