package transport

import "net/url"

// RequestSpec describes one upstream exchange. It is an immutable value
// built per call by the resource clients.
type RequestSpec struct {
	// Method is the HTTP method.
	Method string

	// Path is the URL path relative to the transport's base URL.
	Path string

	// Query holds query parameters. Credentials may add their own.
	Query url.Values

	// Body is an optional JSON-encodable request body.
	Body any

	// Resource names the target resource kind for diagnostics,
	// e.g. "time_entry" or "card".
	Resource string
}
