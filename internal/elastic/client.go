// Package elastic implements the log search backend on top of the official
// Elasticsearch client. Connection pooling, retries and TLS live here, never
// in the search core.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/lottalogs/lottalogs/internal/config"
	"github.com/lottalogs/lottalogs/internal/logsearch"
)

// Client is a logsearch.Backend backed by a single Elasticsearch cluster.
// It is safe for concurrent use.
type Client struct {
	es *elasticsearch.Client
}

var _ logsearch.Backend = (*Client)(nil)

// NewClient builds a client for cfg.URL. transport may be nil to use the
// default http transport.
func NewClient(cfg config.ElasticsearchConfig, transport http.RoundTripper) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{cfg.URL},
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.MaxRetries == 0,
		Transport:    transport,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return &Client{es: es}, nil
}

// Execute runs query as a _search against index.
func (c *Client) Execute(ctx context.Context, query logsearch.Document, index string) (*logsearch.Response, error) {
	seg := datastoreSegment(ctx, "search", index)
	defer seg.End()

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	return readResponse(res)
}

// Ping checks that the cluster answers on its root endpoint.
func (c *Client) Ping(ctx context.Context) (*logsearch.Response, error) {
	seg := datastoreSegment(ctx, "ping", "")
	defer seg.End()

	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return readResponse(res)
}

func readResponse(res *esapi.Response) (*logsearch.Response, error) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &logsearch.Response{StatusCode: res.StatusCode, Body: body}, nil
}

func datastoreSegment(ctx context.Context, op, collection string) *newrelic.DatastoreSegment {
	txn := newrelic.FromContext(ctx)
	return &newrelic.DatastoreSegment{
		StartTime:  txn.StartSegmentNow(),
		Product:    newrelic.DatastoreElasticsearch,
		Collection: collection,
		Operation:  op,
	}
}
