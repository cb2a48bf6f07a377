package logsearch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolQuery(t *testing.T, doc Document) Document {
	t.Helper()
	query, ok := doc["query"].(Document)
	require.True(t, ok, "query clause")
	b, ok := query["bool"].(Document)
	require.True(t, ok, "bool clause")
	return b
}

func TestBuildQuery_EmptyTextIsMatchAll(t *testing.T) {
	doc := BuildQuery(Normalize(SearchRequest{}))

	must := boolQuery(t, doc)["must"]
	assert.Equal(t, Document{"match_all": Document{}}, must)
}

func TestBuildQuery_TextIsWildcardMatchOnMessage(t *testing.T) {
	doc := BuildQuery(Normalize(SearchRequest{SearchText: ptr("error")}))

	must := boolQuery(t, doc)["must"]
	assert.Equal(t, Document{
		"match": Document{"message": Document{"query": "*error*"}},
	}, must)
}

func TestBuildQuery_TextIsNotEscaped(t *testing.T) {
	doc := BuildQuery(Normalize(SearchRequest{SearchText: ptr("a*b?")}))

	must := boolQuery(t, doc)["must"].(Document)
	assert.Equal(t, "*a*b?*", must["match"].(Document)["message"].(Document)["query"])
}

func TestBuildQuery_RangeSizeAndSort(t *testing.T) {
	doc := BuildQuery(NormalizedSearchRequest{
		Index:        "*",
		Size:         0,
		MinTimestamp: "2023-10-01T00:00:00Z",
		MaxTimestamp: "2023-10-02T00:00:00Z",
	})

	assert.Equal(t, []Document{{
		"range": Document{"timestamp": Document{
			"gt": "2023-10-01T00:00:00Z",
			"lt": "2023-10-02T00:00:00Z",
		}},
	}}, boolQuery(t, doc)["filter"])
	assert.Equal(t, uint64(0), doc["size"])
	assert.Equal(t, []Document{{"timestamp": Document{"order": "desc"}}}, doc["sort"])
}

func TestBuildQuery_InvertedBoundsAreNotSpecialCased(t *testing.T) {
	doc := BuildQuery(NormalizedSearchRequest{
		Size:         10,
		MinTimestamp: "2030-01-01T00:00:00Z",
		MaxTimestamp: "2020-01-01T00:00:00Z",
	})

	filter := boolQuery(t, doc)["filter"].([]Document)
	require.Len(t, filter, 1)
	r := filter[0]["range"].(Document)["timestamp"].(Document)
	assert.Equal(t, "2030-01-01T00:00:00Z", r["gt"])
	assert.Equal(t, "2020-01-01T00:00:00Z", r["lt"])
}

func TestBuildQuery_SerializesToBackendJSON(t *testing.T) {
	doc := BuildQuery(Normalize(SearchRequest{SearchText: ptr("boom"), Size: ptr(uint64(3))}))

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": {"bool": {
			"must": {"match": {"message": {"query": "*boom*"}}},
			"filter": [{"range": {"timestamp": {"gt": "1970-01-01T00:00:00Z", "lt": "2040-01-01T00:00:00Z"}}}]
		}},
		"size": 3,
		"sort": [{"timestamp": {"order": "desc"}}]
	}`, string(raw))
}
