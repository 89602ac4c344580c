package transport

import "net/http"

// Secret holds opaque credential material. It redacts itself in string
// conversion, %#v formatting, and JSON marshalling so tokens cannot
// leak through logs or serialized diagnostics. Only Reveal returns the
// raw value, and only the credential implementations call it.
type Secret string

// String implements fmt.Stringer with a redacted value.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer with a redacted value.
func (s Secret) GoString() string { return `transport.Secret("[REDACTED]")` }

// MarshalJSON always marshals the redaction marker.
func (s Secret) MarshalJSON() ([]byte, error) { return []byte(`"[REDACTED]"`), nil }

// Reveal returns the raw credential material.
func (s Secret) Reveal() string { return string(s) }

// Credentials applies an upstream's authentication scheme to an
// outgoing request. Implementations are immutable and safe to share
// across concurrent operations.
type Credentials interface {
	Apply(req *http.Request)
}

// TokenCredentials authenticates with a single API token presented as
// HTTP basic auth, token as username and a fixed literal password
// (the time-tracking upstream's scheme).
type TokenCredentials struct {
	Token Secret
}

// Apply sets the basic auth header.
func (c TokenCredentials) Apply(req *http.Request) {
	req.SetBasicAuth(c.Token.Reveal(), "api_token")
}

// KeyTokenCredentials authenticates with an API key and member token
// embedded as query parameters (the board upstream's scheme).
type KeyTokenCredentials struct {
	Key   Secret
	Token Secret
}

// Apply adds the key and token query parameters.
func (c KeyTokenCredentials) Apply(req *http.Request) {
	q := req.URL.Query()
	q.Set("key", c.Key.Reveal())
	q.Set("token", c.Token.Reveal())
	req.URL.RawQuery = q.Encode()
}
