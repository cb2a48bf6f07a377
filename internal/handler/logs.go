package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lottalogs/lottalogs/internal/logsearch"
	"github.com/lottalogs/lottalogs/internal/model"
	"github.com/lottalogs/lottalogs/internal/response"
)

const (
	defaultHistoryLimit = 50
	historyWriteTimeout = 2 * time.Second
)

var validate = validator.New()

// SearchService is the log search core as seen by the HTTP layer.
type SearchService interface {
	Search(ctx context.Context, req logsearch.SearchRequest) (model.SearchResult, error)
	HealthCheck(ctx context.Context) error
}

// HistoryStore records executed searches. Optional.
type HistoryStore interface {
	Create(ctx context.Context, rec *model.SearchRecord) error
	List(ctx context.Context, limit int) ([]model.SearchRecord, error)
}

// LogsHandler handles /api/logs. History may be nil, in which case searches
// are not recorded and the history endpoint answers 404.
type LogsHandler struct {
	Searcher SearchService
	History  HistoryStore
	Logger   zerolog.Logger
}

type historyQuery struct {
	Limit int `query:"limit" validate:"min=1,max=500"`
}

// Search runs a log search from query parameters (GET /api/logs/).
func (h *LogsHandler) Search(c echo.Context) error {
	req, err := parseSearchRequest(c)
	if err != nil {
		return response.BadRequest(c, "invalid search parameters", err.Error())
	}

	ctx := c.Request().Context()
	start := time.Now()
	result, err := h.Searcher.Search(ctx, req)
	h.record(ctx, req, result, err, time.Since(start))
	if err != nil {
		h.Logger.Error().Err(err).Str("component", "logs").Msg("failed to query log backend")
		return response.InternalError(c, "log search failed", err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// Status reports backend reachability (GET /api/logs/status).
func (h *LogsHandler) Status(c echo.Context) error {
	if err := h.Searcher.HealthCheck(c.Request().Context()); err != nil {
		h.Logger.Error().Err(err).Str("component", "logs").Msg("log backend health check failed")
		return response.InternalError(c, "log backend unavailable", err.Error())
	}
	return c.JSON(http.StatusOK, model.Healthy)
}

// ListHistory returns the most recent searches (GET /api/logs/history).
func (h *LogsHandler) ListHistory(c echo.Context) error {
	if h.History == nil {
		return response.NotFound(c, "search history disabled", "no database configured")
	}
	q := historyQuery{Limit: defaultHistoryLimit}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return response.BadRequest(c, "invalid history parameters", err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return response.BadRequest(c, "invalid history parameters", err.Error())
	}
	list, err := h.History.List(c.Request().Context(), q.Limit)
	if err != nil {
		return response.InternalError(c, "list search history failed", err.Error())
	}
	if list == nil {
		list = []model.SearchRecord{}
	}
	return response.OK(c, map[string]any{"searches": list}, "")
}

// record stores the outcome of a search. Failures are logged only; the
// search response never depends on the history store.
func (h *LogsHandler) record(ctx context.Context, req logsearch.SearchRequest, result model.SearchResult, searchErr error, took time.Duration) {
	if h.History == nil {
		return
	}
	params := logsearch.Normalize(req)
	rec := &model.SearchRecord{
		SearchText:   params.SearchText,
		Index:        params.Index,
		Size:         params.Size,
		MinTimestamp: params.MinTimestamp,
		MaxTimestamp: params.MaxTimestamp,
		Total:        result.Total,
		Status:       model.SearchStatusOK,
		DurationMs:   took.Milliseconds(),
	}
	if searchErr != nil {
		rec.Status = model.SearchStatusFailed
		rec.Error = searchErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()
	if err := h.History.Create(ctx, rec); err != nil {
		h.Logger.Warn().Err(err).Str("component", "history").Msg("failed to record search")
	}
}

// parseSearchRequest reads the optional search parameters. Empty values are
// treated as absent.
func parseSearchRequest(c echo.Context) (logsearch.SearchRequest, error) {
	req := logsearch.SearchRequest{
		SearchText:   optionalParam(c, "search_text"),
		Index:        optionalParam(c, "index"),
		MinTimestamp: optionalParam(c, "min_timestamp"),
		MaxTimestamp: optionalParam(c, "max_timestamp"),
	}
	if raw := optionalParam(c, "size"); raw != nil {
		n, err := strconv.ParseUint(*raw, 10, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return req, fmt.Errorf("size %q is not an unsigned integer: %w", *raw, err)
		}
		req.Size = &n
	}
	return req, nil
}

func optionalParam(c echo.Context, name string) *string {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	return &v
}
