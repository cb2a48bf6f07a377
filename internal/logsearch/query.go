package logsearch

const (
	messageField   = "message"
	timestampField = "timestamp"
)

// BuildQuery returns the search document for req: a bool query whose must
// clause is the text match and whose filter is the open timestamp range,
// capped at req.Size hits and sorted newest first.
//
// The search text is wrapped in wildcards as-is. Backend-special characters
// are not escaped, so callers can inject their own wildcards.
func BuildQuery(req NormalizedSearchRequest) Document {
	return Document{
		"query": Document{
			"bool": Document{
				"must":   matchClause(req.SearchText),
				"filter": []Document{rangeFilter(req.MinTimestamp, req.MaxTimestamp)},
			},
		},
		"size": req.Size,
		"sort": []Document{
			{timestampField: Document{"order": "desc"}},
		},
	}
}

func matchClause(text string) Document {
	if text == "" {
		return Document{"match_all": Document{}}
	}
	return Document{
		"match": Document{
			messageField: Document{"query": "*" + text + "*"},
		},
	}
}

func rangeFilter(lower, upper string) Document {
	return Document{
		"range": Document{
			timestampField: Document{"gt": lower, "lt": upper},
		},
	}
}
