package logsearch

import (
	"errors"
	"fmt"
)

// ErrBackendFailure is matched by every error the Searcher returns.
var ErrBackendFailure = errors.New("log backend failure")

var errNoResponse = errors.New("no response")

// BackendError carries the diagnostic of a failed backend operation: either
// the non-success status code or the transport/decoding error.
type BackendError struct {
	Op         string // "search" or "ping"
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *BackendError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	}
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackendFailure }
