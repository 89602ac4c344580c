package toggl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jonwraymond/trackops/observe"
	"github.com/jonwraymond/trackops/resilience"
	"github.com/jonwraymond/trackops/transport"
)

// DefaultBaseURL is the Toggl Track v9 API root.
const DefaultBaseURL = "https://api.track.toggl.com/api/v9"

// createdWith marks entries created through this client.
const createdWith = "trackops"

// Config configures a Client. Credential material and identifiers are
// treated as already-validated inputs; environment parsing happens
// elsewhere.
type Config struct {
	// Token is the Toggl API token.
	Token transport.Secret

	// BaseURL overrides the API root, mainly for tests.
	// Default: DefaultBaseURL
	BaseURL string

	// Timeout is the per-request budget.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxAttempts bounds HTTP attempts per operation (including the first).
	// Default: 3
	MaxAttempts int

	// RetryInitialDelay is the backoff before the first retry.
	// Default: 500ms
	RetryInitialDelay time.Duration

	// Gate paces all requests to the Toggl host. Share one gate across
	// every client in the process to keep the pacing guarantee global.
	// Default: a private gate with a 1 second interval
	Gate *resilience.PacingGate

	// Breaker optionally guards the upstream with a circuit breaker.
	Breaker *resilience.CircuitBreaker

	// Consistency configures visibility verification for writes.
	Consistency resilience.VisibilityConfig

	// PageSize is the page length used when following paginated lists.
	// Default: 50
	PageSize int

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client

	// Logger, Tracer and Metrics hook the client into the observe
	// stack. All default to no-ops.
	Logger  observe.Logger
	Tracer  observe.Tracer
	Metrics observe.Metrics
}

// Client exposes typed Toggl operations. All methods are safe for
// concurrent use; the only shared mutable state is the pacing gate's.
type Client struct {
	transport  *transport.Transport
	exec       *resilience.Executor
	createExec *resilience.Executor
	guard      *resilience.VisibilityGuard
	gate       *resilience.PacingGate
	logger     observe.Logger
	tracer     observe.Tracer
	metrics    observe.Metrics
	pageSize   int
}

// New creates a Toggl client.
func New(cfg Config) (*Client, error) {
	// Apply defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryInitialDelay <= 0 {
		cfg.RetryInitialDelay = 500 * time.Millisecond
	}
	if cfg.Gate == nil {
		cfg.Gate = resilience.NewPacingGate(resilience.PacingConfig{})
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observe.NewNoopTracer()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observe.NewNoopMetrics()
	}

	tr, err := transport.New(transport.Config{
		BaseURL:     cfg.BaseURL,
		Credentials: transport.TokenCredentials{Token: cfg.Token},
		Timeout:     cfg.Timeout,
		HTTPClient:  cfg.HTTPClient,
		Logger:      cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
		RetryIf:      transport.IsRetryable,
	}

	execOpts := []resilience.ExecutorOption{
		resilience.WithRetry(resilience.NewRetry(retryCfg)),
		resilience.WithPacing(cfg.Gate, tr.Host()),
	}

	// Creates only retry rate limits: a transient failure mid-exchange
	// may mean the entry already landed upstream.
	createRetryCfg := retryCfg
	createRetryCfg.RetryIf = transport.IsRateLimited
	createOpts := []resilience.ExecutorOption{
		resilience.WithRetry(resilience.NewRetry(createRetryCfg)),
		resilience.WithPacing(cfg.Gate, tr.Host()),
	}

	if cfg.Breaker != nil {
		execOpts = append(execOpts, resilience.WithCircuitBreaker(cfg.Breaker))
		createOpts = append(createOpts, resilience.WithCircuitBreaker(cfg.Breaker))
	}

	return &Client{
		transport:  tr,
		exec:       resilience.NewExecutor(execOpts...),
		createExec: resilience.NewExecutor(createOpts...),
		guard:      resilience.NewVisibilityGuard(cfg.Consistency),
		gate:       cfg.Gate,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		metrics:    cfg.Metrics,
		pageSize:   cfg.PageSize,
	}, nil
}

// call runs one operation through the idempotent execution chain.
func (c *Client) call(ctx context.Context, meta observe.CallMeta, spec transport.RequestSpec) (*transport.RawResponse, error) {
	return c.run(ctx, c.exec, meta, spec)
}

// create runs one non-idempotent write with restricted retries.
func (c *Client) create(ctx context.Context, meta observe.CallMeta, spec transport.RequestSpec) (*transport.RawResponse, error) {
	return c.run(ctx, c.createExec, meta, spec)
}

func (c *Client) run(ctx context.Context, exec *resilience.Executor, meta observe.CallMeta, spec transport.RequestSpec) (*transport.RawResponse, error) {
	ctx, span := c.tracer.StartSpan(ctx, meta)
	start := time.Now()

	var raw *transport.RawResponse
	attempts := 0
	err := exec.Execute(ctx, func(ctx context.Context) error {
		attempts++
		resp, derr := c.transport.Do(ctx, spec)
		if derr != nil {
			return derr
		}
		raw = resp
		return nil
	})

	c.metrics.RecordCall(ctx, meta, time.Since(start), attempts, err)
	c.tracer.EndSpan(span, err)

	if err != nil {
		return nil, classify(err, meta)
	}
	return raw, nil
}

// classify guarantees a classified error reaches the caller, annotated
// with the resource kind and id when the transport did not know them.
func classify(err error, meta observe.CallMeta) error {
	var terr *transport.Error
	if errors.As(err, &terr) {
		if terr.Resource == "" || terr.ID == "" {
			return terr.WithResource(meta.Resource, meta.ID)
		}
		return terr
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return &transport.Error{
			Kind:     transport.KindTransient,
			Message:  "circuit breaker open",
			Resource: meta.Resource,
			ID:       meta.ID,
			Cause:    err,
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &transport.Error{
			Kind:     transport.KindCanceled,
			Message:  "operation canceled",
			Resource: meta.Resource,
			ID:       meta.ID,
			Cause:    err,
		}
	}
	return &transport.Error{
		Kind:     transport.KindTransient,
		Message:  err.Error(),
		Resource: meta.Resource,
		ID:       meta.ID,
		Cause:    err,
	}
}

// decode unmarshals and validates a single entity. A response failing
// validation is never surfaced as a success.
func decode(body []byte, v interface{ validate() error }, resource string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &transport.Error{
			Kind:     transport.KindValidation,
			Message:  "decoding response: " + err.Error(),
			Resource: resource,
			Cause:    err,
		}
	}
	if err := v.validate(); err != nil {
		return &transport.Error{
			Kind:     transport.KindValidation,
			Message:  "response validation: " + err.Error(),
			Resource: resource,
			Cause:    err,
		}
	}
	return nil
}

// decodeList unmarshals a JSON array response.
func decodeList(body []byte, v any, resource string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &transport.Error{
			Kind:     transport.KindValidation,
			Message:  "decoding response: " + err.Error(),
			Resource: resource,
			Cause:    err,
		}
	}
	return nil
}

// validationError wraps a model validation failure for list elements.
func validationError(err error, resource string) error {
	if err == nil {
		return nil
	}
	return &transport.Error{
		Kind:     transport.KindValidation,
		Message:  "response validation: " + err.Error(),
		Resource: resource,
		Cause:    err,
	}
}

// visibilityError maps a guard failure onto the error taxonomy. Budget
// exhaustion becomes a consistency timeout; a failing poll keeps its
// own classification.
func visibilityError(err error, resource, id string) error {
	if errors.Is(err, resilience.ErrVisibilityTimeout) {
		return &transport.Error{
			Kind:     transport.KindConsistencyTimeout,
			Message:  "write not visible within wait budget",
			Resource: resource,
			ID:       id,
			Cause:    err,
		}
	}
	return classify(err, observe.CallMeta{Resource: resource, ID: id})
}

// Ping verifies credentials and upstream reachability with a cheap
// authenticated read.
func (c *Client) Ping(ctx context.Context) error {
	meta := observe.CallMeta{Service: "toggl", Operation: "ping"}
	_, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/me",
		Resource: "me",
	})
	return err
}
