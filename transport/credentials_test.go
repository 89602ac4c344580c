package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestSecret_Redaction(t *testing.T) {
	s := Secret("hunter2")

	if fmt.Sprint(s) != "[REDACTED]" {
		t.Errorf("Sprint = %q, want [REDACTED]", fmt.Sprint(s))
	}
	if strings.Contains(fmt.Sprintf("%#v", s), "hunter2") {
		t.Error("GoString leaked the secret")
	}

	encoded, err := json.Marshal(struct {
		Token Secret `json:"token"`
	}{Token: s})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(encoded), "hunter2") {
		t.Errorf("JSON leaked the secret: %s", encoded)
	}

	if s.Reveal() != "hunter2" {
		t.Errorf("Reveal() = %q, want hunter2", s.Reveal())
	}
}

func TestTokenCredentials_Apply(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/me", nil)
	TokenCredentials{Token: "tok"}.Apply(req)

	user, pass, ok := req.BasicAuth()
	if !ok {
		t.Fatal("basic auth not set")
	}
	if user != "tok" || pass != "api_token" {
		t.Errorf("basic auth = %q/%q, want tok/api_token", user, pass)
	}
}

func TestKeyTokenCredentials_Apply(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.com/cards?limit=10", nil)
	KeyTokenCredentials{Key: "k", Token: "v"}.Apply(req)

	q := req.URL.Query()
	if q.Get("key") != "k" || q.Get("token") != "v" {
		t.Errorf("query = %v, want key=k token=v", q)
	}
	if q.Get("limit") != "10" {
		t.Error("existing query parameters must be preserved")
	}
}
