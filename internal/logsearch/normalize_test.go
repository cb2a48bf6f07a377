package logsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(SearchRequest{})

	assert.Equal(t, NormalizedSearchRequest{
		SearchText:   "",
		Index:        "*",
		Size:         100,
		MinTimestamp: "1970-01-01T00:00:00Z",
		MaxTimestamp: "2040-01-01T00:00:00Z",
	}, got)
}

func TestNormalize_KeepsSuppliedValues(t *testing.T) {
	req := SearchRequest{
		SearchText:   ptr("error"),
		Index:        ptr("logs-*"),
		Size:         ptr(uint64(0)),
		MinTimestamp: ptr("2023-10-01T00:00:00Z"),
		MaxTimestamp: ptr("2023-10-02T00:00:00Z"),
	}

	got := Normalize(req)

	assert.Equal(t, NormalizedSearchRequest{
		SearchText:   "error",
		Index:        "logs-*",
		Size:         0,
		MinTimestamp: "2023-10-01T00:00:00Z",
		MaxTimestamp: "2023-10-02T00:00:00Z",
	}, got)
}

func TestNormalize_FieldsDefaultIndependently(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		want NormalizedSearchRequest
	}{
		{
			name: "only index",
			req:  SearchRequest{Index: ptr("app")},
			want: NormalizedSearchRequest{Index: "app", Size: 100, MinTimestamp: DefaultMinTimestamp, MaxTimestamp: DefaultMaxTimestamp},
		},
		{
			name: "only size",
			req:  SearchRequest{Size: ptr(uint64(5))},
			want: NormalizedSearchRequest{Index: "*", Size: 5, MinTimestamp: DefaultMinTimestamp, MaxTimestamp: DefaultMaxTimestamp},
		},
		{
			name: "only upper bound",
			req:  SearchRequest{MaxTimestamp: ptr("2030-01-01T00:00:00Z")},
			want: NormalizedSearchRequest{Index: "*", Size: 100, MinTimestamp: DefaultMinTimestamp, MaxTimestamp: "2030-01-01T00:00:00Z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.req))
		})
	}
}

func TestNormalize_DoesNotMutateRequest(t *testing.T) {
	req := SearchRequest{SearchText: ptr("x")}

	_ = Normalize(req)

	assert.Nil(t, req.Index)
	assert.Nil(t, req.Size)
	assert.Nil(t, req.MinTimestamp)
	assert.Nil(t, req.MaxTimestamp)
	assert.Equal(t, "x", *req.SearchText)
}
