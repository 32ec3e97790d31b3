package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

const contextKeySubjectID = "subject_id"

// CredentialVerifier validates a raw Authorization header value and returns
// the stable subject identifier of the caller.
type CredentialVerifier interface {
	Verify(ctx context.Context, header string) (string, error)
}

// Auth is the access gate for protected routes: it verifies the bearer
// credential and injects the subject ID into the echo context, or rejects
// the request with 401 before the wrapped handler runs.
func Auth(verifier CredentialVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			subjectID, err := verifier.Verify(c.Request().Context(), header)
			if err != nil {
				slog.Warn("credential verification failed",
					"path", c.Request().URL.Path, "error", err)
				return err
			}

			c.Set(contextKeySubjectID, subjectID)
			return next(c)
		}
	}
}

// SubjectID extracts the authenticated subject ID from the echo context.
func SubjectID(c echo.Context) (string, bool) {
	id, ok := c.Get(contextKeySubjectID).(string)
	return id, ok && id != ""
}

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}
