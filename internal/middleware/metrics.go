package middleware

import (
	"errors"
	"time"

	"oak-ledger/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		var httpErr *echo.HTTPError
		if err != nil && !c.Response().Committed && errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		// route template keeps ids out of the label set
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		prometheus.RecordHTTPRequest(c.Request().Method, path, status, time.Since(start))

		return err
	}
}
