package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/trackops/observe"
)

// maxErrorSnippet bounds how much of an upstream error body is kept in
// the classified error message.
const maxErrorSnippet = 256

// Config configures a Transport.
type Config struct {
	// BaseURL is the upstream API root, e.g. "https://api.track.toggl.com/api/v9".
	BaseURL string

	// Credentials applies the upstream's authentication scheme.
	Credentials Credentials

	// Timeout is the hard per-request budget. A request that exceeds it
	// is classified as a retryable transient failure.
	// Default: 30 seconds
	Timeout time.Duration

	// UserAgent is sent with every request.
	// Default: "trackops"
	UserAgent string

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client

	// Logger receives per-request debug and warn lines.
	// Default: discard
	Logger observe.Logger
}

// RawResponse is a successful upstream exchange. The body is unparsed;
// interpretation belongs to the resource clients.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport issues single HTTP request/response exchanges.
type Transport struct {
	config Config
	base   *url.URL
	client *http.Client
	logger observe.Logger
}

// New creates a Transport for one upstream.
func New(config Config) (*Transport, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingBaseURL, config.BaseURL)
	}
	if config.Credentials == nil {
		return nil, ErrMissingCredentials
	}

	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "trackops"
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	logger := config.Logger
	if logger == nil {
		logger = observe.NopLogger()
	}

	return &Transport{
		config: config,
		base:   base,
		client: client,
		logger: logger,
	}, nil
}

// Host returns the upstream host this transport targets. The pacing
// gate keys its per-host state on this value.
func (t *Transport) Host() string {
	return t.base.Host
}

// Do executes one exchange described by spec. It returns the raw
// response for any 2xx status and a classified *Error for everything
// else. The request is bounded by the configured timeout; the caller's
// context cancels the exchange early.
func (t *Transport) Do(ctx context.Context, spec RequestSpec) (*RawResponse, error) {
	req, err := t.buildRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	reqCtx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()
	req = req.WithContext(reqCtx)

	t.logger.Debug(ctx, "dispatching request",
		observe.Field{Key: "method", Value: spec.Method},
		observe.Field{Key: "path", Value: spec.Path},
		observe.Field{Key: "request_id", Value: requestID},
	)

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, t.classifyNetworkError(ctx, reqCtx, spec, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:      KindTransient,
			Retryable: true,
			Message:   "reading response body: " + err.Error(),
			Resource:  spec.Resource,
			Cause:     err,
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		t.logger.Debug(ctx, "request succeeded",
			observe.Field{Key: "status", Value: resp.StatusCode},
			observe.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			observe.Field{Key: "request_id", Value: requestID},
		)
		return &RawResponse{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}, nil
	}

	kind, retryable := classifyStatus(resp.StatusCode)
	terr := &Error{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Retryable:  retryable,
		Message:    errorSnippet(resp.StatusCode, body),
		Resource:   spec.Resource,
	}

	t.logger.Warn(ctx, "request failed",
		observe.Field{Key: "status", Value: resp.StatusCode},
		observe.Field{Key: "kind", Value: string(kind)},
		observe.Field{Key: "request_id", Value: requestID},
	)

	return nil, terr
}

func (t *Transport) buildRequest(ctx context.Context, spec RequestSpec) (*http.Request, error) {
	u := *t.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(spec.Path, "/")
	if len(spec.Query) > 0 {
		u.RawQuery = spec.Query.Encode()
	}

	var bodyReader io.Reader
	if spec.Body != nil {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, &Error{
				Kind:     KindValidation,
				Message:  "encoding request body: " + err.Error(),
				Resource: spec.Resource,
				Cause:    err,
			}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, u.String(), bodyReader)
	if err != nil {
		return nil, &Error{
			Kind:     KindValidation,
			Message:  "building request: " + err.Error(),
			Resource: spec.Resource,
			Cause:    err,
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.config.UserAgent)
	if spec.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	t.config.Credentials.Apply(req)

	return req, nil
}

// classifyNetworkError separates caller cancellation from budget
// timeouts and genuine network faults. Only the caller's own
// cancellation is non-retryable; everything else at this layer is a
// transient failure.
func (t *Transport) classifyNetworkError(ctx, reqCtx context.Context, spec RequestSpec, err error) *Error {
	if ctx.Err() != nil {
		return &Error{
			Kind:     KindCanceled,
			Message:  "request canceled by caller",
			Resource: spec.Resource,
			Cause:    ctx.Err(),
		}
	}

	if reqCtx.Err() == context.DeadlineExceeded {
		return &Error{
			Kind:      KindTransient,
			Retryable: true,
			Message:   fmt.Sprintf("request exceeded %s budget", t.config.Timeout),
			Resource:  spec.Resource,
			Cause:     reqCtx.Err(),
		}
	}

	return &Error{
		Kind:      KindTransient,
		Retryable: true,
		Message:   "network failure: " + err.Error(),
		Resource:  spec.Resource,
		Cause:     err,
	}
}

// errorSnippet builds a bounded human-readable message from an upstream
// error body, falling back to the status text.
func errorSnippet(status int, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return http.StatusText(status)
	}
	if len(msg) > maxErrorSnippet {
		msg = msg[:maxErrorSnippet]
	}
	return msg
}
