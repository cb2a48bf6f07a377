package logsearch

const (
	DefaultIndex        = "*"
	DefaultMinTimestamp = "1970-01-01T00:00:00Z"
	DefaultMaxTimestamp = "2040-01-01T00:00:00Z"
)

const DefaultSize uint64 = 100

// SearchRequest holds caller-supplied search parameters. A nil field means
// the parameter was not supplied.
type SearchRequest struct {
	SearchText   *string
	Index        *string
	Size         *uint64
	MinTimestamp *string
	MaxTimestamp *string
}

// NormalizedSearchRequest is a SearchRequest with every field resolved.
type NormalizedSearchRequest struct {
	SearchText   string
	Index        string
	Size         uint64
	MinTimestamp string
	MaxTimestamp string
}

// Normalize fills in defaults for every absent field. It never fails and does
// not modify req.
func Normalize(req SearchRequest) NormalizedSearchRequest {
	return NormalizedSearchRequest{
		SearchText:   valueOr(req.SearchText, ""),
		Index:        valueOr(req.Index, DefaultIndex),
		Size:         valueOr(req.Size, DefaultSize),
		MinTimestamp: valueOr(req.MinTimestamp, DefaultMinTimestamp),
		MaxTimestamp: valueOr(req.MaxTimestamp, DefaultMaxTimestamp),
	}
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
