package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetline/api/internal/domain"
)

// MessageResponse is the `{"message": ...}` body used for confirmations and
// errors alike.
type MessageResponse struct {
	Message string `json:"message"`
}

// HTTPErrorHandler is the global error handler for echo. Every error that
// escapes a handler is translated to a status code and a message body here.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := mapError(err)
	if jsonErr := c.JSON(status, MessageResponse{Message: message}); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}

func mapError(err error) (int, string) {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, msg
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, domain.Message(err, "The request body is invalid")
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.Message(err, "Authentication is required")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Message(err, "The requested resource was not found")
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.Message(err, "The resource already exists")
	case errors.Is(err, domain.ErrInternal):
		return http.StatusInternalServerError, domain.Message(err, "An unexpected error occurred")
	default:
		// Provider and store failures land here. The message is surfaced
		// for diagnosability, as the upstream API did.
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, err.Error()
	}
}
