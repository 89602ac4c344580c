package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestTransport(t *testing.T, handler http.Handler, creds Credentials) (*Transport, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	if creds == nil {
		creds = TokenCredentials{Token: "secret-token"}
	}
	tr, err := New(Config{
		BaseURL:     server.URL,
		Credentials: creds,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr, server
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{BaseURL: "", Credentials: TokenCredentials{Token: "x"}})
	if !errors.Is(err, ErrMissingBaseURL) {
		t.Errorf("New() error = %v, want ErrMissingBaseURL", err)
	}

	_, err = New(Config{BaseURL: "https://api.example.com"})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("New() error = %v, want ErrMissingCredentials", err)
	}
}

func TestTransport_SuccessfulExchange(t *testing.T) {
	var gotAuth, gotAccept, gotRequestID string
	tr, _ := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1}`)
	}), nil)

	raw, err := tr.Do(context.Background(), RequestSpec{
		Method:   http.MethodGet,
		Path:     "/me",
		Resource: "me",
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if raw.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", raw.StatusCode)
	}
	if string(raw.Body) != `{"id":1}` {
		t.Errorf("Body = %s, want {\"id\":1}", raw.Body)
	}
	if gotAuth == "" {
		t.Error("Authorization header not set")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestTransport_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		wantKind  Kind
		retryable bool
	}{
		{http.StatusUnauthorized, KindAuthentication, false},
		{http.StatusForbidden, KindAuthentication, false},
		{http.StatusNotFound, KindNotFound, false},
		{http.StatusBadRequest, KindValidation, false},
		{http.StatusUnprocessableEntity, KindValidation, false},
		{http.StatusTooManyRequests, KindRateLimited, true},
		{http.StatusInternalServerError, KindTransient, true},
		{http.StatusBadGateway, KindTransient, true},
		{http.StatusServiceUnavailable, KindTransient, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			tr, _ := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}), nil)

			_, err := tr.Do(context.Background(), RequestSpec{
				Method:   http.MethodGet,
				Path:     "/x",
				Resource: "x",
			})
			if err == nil {
				t.Fatal("Do() error = nil, want classified error")
			}

			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("Do() error = %T, want *Error", err)
			}
			if terr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", terr.Kind, tt.wantKind)
			}
			if terr.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", terr.Retryable, tt.retryable)
			}
			if terr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", terr.StatusCode, tt.status)
			}
		})
	}
}

func TestTransport_ErrorSnippetBounded(t *testing.T) {
	long := make([]byte, 2048)
	for i := range long {
		long[i] = 'x'
	}
	tr, _ := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(long)
	}), nil)

	_, err := tr.Do(context.Background(), RequestSpec{Method: http.MethodGet, Path: "/x"})

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("Do() error = %T, want *Error", err)
	}
	if len(terr.Message) > maxErrorSnippet {
		t.Errorf("Message length = %d, want <= %d", len(terr.Message), maxErrorSnippet)
	}
}

func TestTransport_TimeoutIsRetryableTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	t.Cleanup(server.Close)

	tr, err := New(Config{
		BaseURL:     server.URL,
		Credentials: TokenCredentials{Token: "x"},
		Timeout:     50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, derr := tr.Do(context.Background(), RequestSpec{Method: http.MethodGet, Path: "/slow"})
	if !IsTransient(derr) {
		t.Errorf("KindOf(err) = %q, want transient", KindOf(derr))
	}
	if !IsRetryable(derr) {
		t.Error("timeout should be retryable")
	}
}

func TestTransport_CallerCancellation(t *testing.T) {
	tr, _ := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := tr.Do(ctx, RequestSpec{Method: http.MethodGet, Path: "/slow"})
	if !IsCanceled(err) {
		t.Errorf("KindOf(err) = %q, want canceled", KindOf(err))
	}
	if IsRetryable(err) {
		t.Error("caller cancellation must not be retryable")
	}
}

func TestTransport_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse all connections

	tr, err := New(Config{
		BaseURL:     server.URL,
		Credentials: TokenCredentials{Token: "x"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, derr := tr.Do(context.Background(), RequestSpec{Method: http.MethodGet, Path: "/x"})
	if !IsTransient(derr) {
		t.Errorf("KindOf(err) = %q, want transient", KindOf(derr))
	}
	if !IsRetryable(derr) {
		t.Error("network failure should be retryable")
	}
}

func TestTransport_JSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	tr, _ := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{}`)
	}), nil)

	_, err := tr.Do(context.Background(), RequestSpec{
		Method: http.MethodPost,
		Path:   "/things",
		Body:   map[string]string{"name": "widget"},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["name"] != "widget" {
		t.Errorf("body name = %v, want widget", gotBody["name"])
	}
}

func TestTransport_Host(t *testing.T) {
	tr, server := newTestTransport(t, http.NotFoundHandler(), nil)

	wantHost := server.Listener.Addr().String()
	if tr.Host() != wantHost {
		t.Errorf("Host() = %q, want %q", tr.Host(), wantHost)
	}
}
