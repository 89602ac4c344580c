package health_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/jonwraymond/trackops/health"
	"github.com/jonwraymond/trackops/transport"
)

// ExampleNewUpstreamChecker demonstrates how error classification maps
// onto probe status: a throttling upstream is degraded, not dead.
func ExampleNewUpstreamChecker() {
	checker := health.NewUpstreamChecker("toggl", func(ctx context.Context) error {
		return &transport.Error{Kind: transport.KindRateLimited, StatusCode: 429, Retryable: true}
	})

	result := checker.Check(context.Background())
	fmt.Println("status:", result.Status)
	fmt.Println("message:", result.Message)

	// Output:
	// status: degraded
	// message: upstream throttling
}

// ExampleNewRegistry demonstrates sweeping several upstreams and
// reducing the results to one overall status.
func ExampleNewRegistry() {
	registry := health.NewRegistry()
	registry.Register(health.NewUpstreamChecker("toggl", func(ctx context.Context) error {
		return nil
	}))
	registry.Register(health.NewUpstreamChecker("trello", func(ctx context.Context) error {
		return &transport.Error{Kind: transport.KindAuthentication, StatusCode: 401}
	}))

	results, err := registry.CheckAll(context.Background())
	if err != nil {
		fmt.Println("sweep failed:", err)
		return
	}

	for _, name := range registry.CheckerNames() {
		fmt.Printf("%s: %s\n", name, results[name].Status)
	}
	fmt.Println("overall:", health.OverallStatus(results))

	// Output:
	// toggl: healthy
	// trello: unhealthy
	// overall: unhealthy
}

// ExampleHandler demonstrates serving the registry as a readiness
// endpoint. Unhealthy upstreams turn into a 503.
func ExampleHandler() {
	registry := health.NewRegistry()
	registry.Register(health.NewUpstreamChecker("toggl", func(ctx context.Context) error {
		return nil
	}))

	srv := httptest.NewServer(health.Handler(registry))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("status code:", resp.StatusCode)
	fmt.Println("content type:", resp.Header.Get("Content-Type"))

	// Output:
	// status code: 200
	// content type: application/json
}
