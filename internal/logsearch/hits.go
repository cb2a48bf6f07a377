package logsearch

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/lottalogs/lottalogs/internal/model"
)

var parserPool fastjson.ParserPool

// decodeHits maps a raw search response body into a SearchResult. Any field
// missing or of the wrong type is reported as an error.
func decodeHits(body []byte) (model.SearchResult, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("parse response: %w", err)
	}

	hits := v.Get("hits")
	if hits == nil {
		return model.SearchResult{}, fmt.Errorf("response has no hits object")
	}
	totalValue := hits.Get("total", "value")
	if totalValue == nil {
		return model.SearchResult{}, fmt.Errorf("response has no hits.total.value")
	}
	total, err := totalValue.Uint64()
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("hits.total.value: %w", err)
	}
	list := hits.Get("hits")
	if list == nil {
		return model.SearchResult{}, fmt.Errorf("response has no hits.hits array")
	}
	items, err := list.Array()
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("hits.hits: %w", err)
	}

	messages := make([]model.LogMessage, 0, len(items))
	for i, item := range items {
		msg, err := decodeHit(item)
		if err != nil {
			return model.SearchResult{}, fmt.Errorf("hit %d: %w", i, err)
		}
		messages = append(messages, msg)
	}
	return model.SearchResult{Messages: messages, Total: total}, nil
}

func decodeHit(hit *fastjson.Value) (model.LogMessage, error) {
	var (
		msg model.LogMessage
		err error
	)
	fields := []struct {
		dst  *string
		path []string
	}{
		{&msg.ID, []string{"_id"}},
		{&msg.Index, []string{"_index"}},
		{&msg.Message, []string{"_source", "message"}},
		{&msg.Host, []string{"_source", "host"}},
		{&msg.Timestamp, []string{"_source", "timestamp"}},
	}
	for _, f := range fields {
		if *f.dst, err = stringAt(hit, f.path...); err != nil {
			return model.LogMessage{}, err
		}
	}
	return msg, nil
}

func stringAt(v *fastjson.Value, path ...string) (string, error) {
	field := v.Get(path...)
	if field == nil {
		return "", fmt.Errorf("missing field %v", path)
	}
	b, err := field.StringBytes()
	if err != nil {
		return "", fmt.Errorf("field %v: %w", path, err)
	}
	return string(b), nil
}
