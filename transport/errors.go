package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for transport construction.
var (
	// ErrMissingBaseURL indicates Config.BaseURL is empty or unparseable.
	ErrMissingBaseURL = errors.New("transport: missing or invalid base URL")

	// ErrMissingCredentials indicates Config.Credentials is nil.
	ErrMissingCredentials = errors.New("transport: missing credentials")
)

// Kind classifies an upstream failure.
type Kind string

const (
	// KindAuthentication covers invalid or expired credentials (401/403).
	KindAuthentication Kind = "authentication"
	// KindNotFound covers references to identifiers that do not exist (404).
	KindNotFound Kind = "not_found"
	// KindValidation covers malformed requests and responses that fail
	// schema validation (other 4xx, bad payloads).
	KindValidation Kind = "validation"
	// KindRateLimited covers upstream throttling (429).
	KindRateLimited Kind = "rate_limited"
	// KindTransient covers server errors, network faults, and request
	// budget timeouts (5xx, dial/read failures).
	KindTransient Kind = "transient"
	// KindConsistencyTimeout marks a write that succeeded but could not
	// be verified visible within the wait budget.
	KindConsistencyTimeout Kind = "consistency_timeout"
	// KindCanceled marks caller-initiated cancellation.
	KindCanceled Kind = "canceled"
)

// Error is a classified upstream failure. Every failure path out of the
// transport and the resource clients produces one; bare status codes or
// unparsed bodies never escape.
type Error struct {
	Kind       Kind
	StatusCode int // 0 when no HTTP response was received
	Retryable  bool
	Message    string
	Resource   string // resource kind, e.g. "time_entry", set by clients
	ID         string // resource identifier, set by clients when known
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Resource != "" {
		b.WriteString(e.Resource)
		if e.ID != "" {
			b.WriteString(" ")
			b.WriteString(e.ID)
		}
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithResource returns a copy annotated with the resource kind and id.
// The original classification is preserved.
func (e *Error) WithResource(resource, id string) *Error {
	out := *e
	out.Resource = resource
	out.ID = id
	return &out
}

// classifyStatus maps a non-2xx status code onto a Kind and its
// retry eligibility.
func classifyStatus(status int) (Kind, bool) {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuthentication, false
	case status == http.StatusNotFound:
		return KindNotFound, false
	case status == http.StatusTooManyRequests:
		return KindRateLimited, true
	case status >= 400 && status < 500:
		return KindValidation, false
	default:
		return KindTransient, true
	}
}

// AsError extracts the classified *Error, annotating unclassified
// failures as non-retryable transients so callers always see a Kind.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}
	return &Error{Kind: KindTransient, Retryable: false, Message: err.Error(), Cause: err}
}

// KindOf returns the classification of err, or "" for nil/unclassified.
func KindOf(err error) Kind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return ""
}

// IsRetryable reports whether err is safe and likely productive to retry.
func IsRetryable(err error) bool {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Retryable
	}
	return false
}

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool { return KindOf(err) == KindAuthentication }

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsRateLimited reports whether err is an upstream throttle.
func IsRateLimited(err error) bool { return KindOf(err) == KindRateLimited }

// IsTransient reports whether err is a transient upstream failure.
func IsTransient(err error) bool { return KindOf(err) == KindTransient }

// IsConsistencyTimeout reports whether err marks a write that could not
// be verified visible in time.
func IsConsistencyTimeout(err error) bool { return KindOf(err) == KindConsistencyTimeout }

// IsCanceled reports whether err is a caller cancellation.
func IsCanceled(err error) bool { return KindOf(err) == KindCanceled }
