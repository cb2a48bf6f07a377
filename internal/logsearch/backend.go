package logsearch

import "context"

// Document is a backend query document. It is built fresh per request and
// serialized as JSON by the Backend implementation.
type Document map[string]any

// Response is the raw outcome of a backend call that reached the backend.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the backend answered with a success status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Backend is the document store capability the Searcher depends on.
// Implementations must be safe for concurrent use. A returned error means the
// request never produced a response (connection, timeout, cancellation). A
// nil Response without an error is reported as a backend failure.
type Backend interface {
	Execute(ctx context.Context, query Document, index string) (*Response, error)
	Ping(ctx context.Context) (*Response, error)
}
