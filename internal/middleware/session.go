package middleware

import (
	"net/http"

	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LoginPath is where a client without a session is sent
const LoginPath = "/login"

// SessionGuard answers whether the current session may see a screen
type SessionGuard interface {
	Authenticated() bool
	IsAdmin() bool
}

// RequireSession rejects requests made without a valid session
func RequireSession(g SessionGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.Authenticated() {
				logger.FromContext(c).Warn("Request without a valid session",
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "Please log in to continue",
					"redirect": LoginPath,
				})
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects requests while the role flag is set to viewer
func RequireAdmin(g SessionGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.IsAdmin() {
				logger.FromContext(c).Warn("Admin action attempted by viewer",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Admin access required"})
			}
			return next(c)
		}
	}
}
