package logsearch

import (
	"context"

	"github.com/lottalogs/lottalogs/internal/model"
)

// Searcher translates search requests into backend queries and backend hits
// into SearchResults. It holds no per-request state and is safe for
// concurrent use as long as its Backend is.
type Searcher struct {
	backend Backend
}

// NewSearcher returns a Searcher issuing queries through backend.
func NewSearcher(backend Backend) *Searcher {
	return &Searcher{backend: backend}
}

// Search normalizes req, runs the resulting query against the backend and
// maps the hits. Every failure is a *BackendError; no partial result is
// returned alongside an error.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) (model.SearchResult, error) {
	params := Normalize(req)

	resp, err := s.backend.Execute(ctx, BuildQuery(params), params.Index)
	if err != nil {
		return model.SearchResult{}, &BackendError{Op: "search", Err: err}
	}
	if resp == nil {
		return model.SearchResult{}, &BackendError{Op: "search", Err: errNoResponse}
	}
	if !resp.OK() {
		return model.SearchResult{}, &BackendError{Op: "search", StatusCode: resp.StatusCode}
	}

	result, err := decodeHits(resp.Body)
	if err != nil {
		return model.SearchResult{}, &BackendError{Op: "search", StatusCode: resp.StatusCode, Err: err}
	}
	return result, nil
}

// HealthCheck pings the backend. It returns nil iff the backend answered with
// a success status.
func (s *Searcher) HealthCheck(ctx context.Context) error {
	resp, err := s.backend.Ping(ctx)
	if err != nil {
		return &BackendError{Op: "ping", Err: err}
	}
	if resp == nil {
		return &BackendError{Op: "ping", Err: errNoResponse}
	}
	if !resp.OK() {
		return &BackendError{Op: "ping", StatusCode: resp.StatusCode}
	}
	return nil
}
