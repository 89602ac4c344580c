package toggl_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/jonwraymond/trackops/resilience"
	"github.com/jonwraymond/trackops/toggl"
)

// ExampleNew demonstrates building a client against a test server and
// reading the running timer. Production code omits BaseURL and Gate to
// get the real API root and the default one-second pacing.
func ExampleNew() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me/time_entries/current" {
			fmt.Fprint(w, `{"id": 42, "description": "Writing docs", "start": "2026-08-30T09:00:00Z", "duration": -1, "workspace_id": 7}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := toggl.New(toggl.Config{
		Token:   "tok-secret",
		BaseURL: srv.URL,
		Gate:    resilience.NewPacingGate(resilience.PacingConfig{MinInterval: time.Millisecond}),
	})
	if err != nil {
		fmt.Println("configuration failed:", err)
		return
	}

	entry, err := client.CurrentTimeEntry(context.Background())
	if err != nil {
		fmt.Println("lookup failed:", err)
		return
	}

	fmt.Println("description:", entry.Description)
	fmt.Println("running:", entry.Running())

	// Output:
	// description: Writing docs
	// running: true
}
