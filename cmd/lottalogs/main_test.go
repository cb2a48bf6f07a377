package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottalogs/lottalogs/internal/model"
)

const searchBody = `{"hits":{"total":{"value":7},"hits":[{"_id":"1","_index":"logs",
"_source":{"message":"disk error","host":"web-1","timestamp":"2023-10-01T00:00:00Z"}}]}}`

func fakeES(t *testing.T, status int, onSearch func(body map[string]any, path string)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			w.WriteHeader(status)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if onSearch != nil {
			onSearch(body, r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, searchBody)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, esURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOTTALOGS_PRIMARY__ENV", "test")
	t.Setenv("LOTTALOGS_ELASTICSEARCH__URL", esURL)
	t.Setenv("LOTTALOGS_ELASTICSEARCH__MAX_RETRIES", "0")
	t.Setenv("LOTTALOGS_OBSERVABILITY__LOGGING__LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSearchCommand_JSON(t *testing.T) {
	var gotBody map[string]any
	var gotPath string
	url := fakeES(t, http.StatusOK, func(body map[string]any, path string) {
		gotBody, gotPath = body, path
	})

	out, err := run(t, url, "search", "--text", "error", "--index", "logs-*", "--size", "5", "--json")

	require.NoError(t, err)
	var res model.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, uint64(7), res.Total)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "disk error", res.Messages[0].Message)

	assert.Equal(t, "/logs-*/_search", gotPath)
	assert.EqualValues(t, 5, gotBody["size"])
	must := gotBody["query"].(map[string]any)["bool"].(map[string]any)["must"]
	assert.Equal(t, map[string]any{"match": map[string]any{"message": map[string]any{"query": "*error*"}}}, must)
}

func TestSearchCommand_DefaultsWhenFlagsOmitted(t *testing.T) {
	var gotBody map[string]any
	var gotPath string
	url := fakeES(t, http.StatusOK, func(body map[string]any, path string) {
		gotBody, gotPath = body, path
	})

	out, err := run(t, url, "search")

	require.NoError(t, err)
	assert.Equal(t, "/*/_search", gotPath)
	assert.EqualValues(t, 100, gotBody["size"])
	assert.Contains(t, out, "1 of 7 hits")
	assert.Contains(t, out, "disk error")
}

func TestSearchCommand_BackendFailure(t *testing.T) {
	url := fakeES(t, http.StatusInternalServerError, nil)

	_, err := run(t, url, "search", "--json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHealthCommand(t *testing.T) {
	out, err := run(t, fakeES(t, http.StatusOK, nil), "health")
	require.NoError(t, err)
	assert.Contains(t, out, "healthy")

	out, err = run(t, fakeES(t, http.StatusServiceUnavailable, nil), "health")
	require.Error(t, err)
	assert.Contains(t, out, "unhealthy")
}

func TestHistoryCommands_RequireDatabase(t *testing.T) {
	url := fakeES(t, http.StatusOK, nil)

	_, err := run(t, url, "migrate")
	assert.ErrorIs(t, err, errHistoryDisabled)

	_, err = run(t, url, "history", "prune", "--older-than", "24h")
	assert.ErrorIs(t, err, errHistoryDisabled)

	_, err = run(t, url, "history", "prune", "--older-than", "0s")
	assert.ErrorContains(t, err, "must be positive")
}
