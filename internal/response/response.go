package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIResponse wraps management payloads (history, liveness). Search results
// and backend status are written bare with c.JSON.
type APIResponse struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path"`
}

// APIError is the body of every failed request.
type APIError struct {
	Message   string `json:"message"`
	Error     string `json:"error"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

func OK(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, APIResponse{
		Data:    data,
		Status:  http.StatusOK,
		Message: message,
		Path:    requestPath(c),
	})
}

// Error writes an APIError. The request ID comes from the response header set
// by the RequestID middleware, so it is empty when that middleware is absent.
func Error(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, APIError{
		Message:   message,
		Error:     detail,
		Path:      requestPath(c),
		Status:    status,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

func BadRequest(c echo.Context, message, detail string) error {
	return Error(c, http.StatusBadRequest, message, detail)
}

func NotFound(c echo.Context, message, detail string) error {
	return Error(c, http.StatusNotFound, message, detail)
}

func InternalError(c echo.Context, message, detail string) error {
	return Error(c, http.StatusInternalServerError, message, detail)
}

func requestPath(c echo.Context) string {
	if req := c.Request(); req != nil {
		return req.URL.Path
	}
	return ""
}
