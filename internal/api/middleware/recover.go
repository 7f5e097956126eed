package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// CrashReporter receives uncaught request-path failures. It must never
// panic; the implementation swallows its own errors.
type CrashReporter interface {
	Report(ctx context.Context, cause error, stack []byte)
}

// Recover converts a handler panic into a 500 response and routes the
// failure to the critical error reporter. The process survives: reporting
// is a degraded-mode path, not a recovery of request state.
func Recover(reporter CrashReporter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					cause, ok := r.(error)
					if !ok {
						cause = fmt.Errorf("%v", r)
					}
					reporter.Report(c.Request().Context(), cause, debug.Stack())
					err = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
			}()
			return next(c)
		}
	}
}
