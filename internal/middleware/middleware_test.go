package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fakeGuard struct {
	authenticated bool
	admin         bool
}

func (g fakeGuard) Authenticated() bool { return g.authenticated }
func (g fakeGuard) IsAdmin() bool       { return g.admin }

func ok(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"request_id": logger.RequestID(c.Request().Context())})
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware)
	e.GET("/", ok)

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(logger.RequestIDKey)
		if id == "" {
			t.Fatal("expected X-Request-ID response header")
		}
		var body map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body["request_id"] != id {
			t.Errorf("expected id on request context, got %q want %q", body["request_id"], id)
		}
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(logger.RequestIDKey, "upstream-1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if got := rec.Header().Get(logger.RequestIDKey); got != "upstream-1" {
			t.Errorf("expected upstream-1, got %q", got)
		}
	})
}

func TestSessionGuards(t *testing.T) {
	testCases := []struct {
		name   string
		guard  fakeGuard
		status int
	}{
		{"no session", fakeGuard{}, http.StatusUnauthorized},
		{"viewer", fakeGuard{authenticated: true}, http.StatusForbidden},
		{"admin", fakeGuard{authenticated: true, admin: true}, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			g := e.Group("", RequireSession(tc.guard), RequireAdmin(tc.guard))
			g.DELETE("/inventory/:id", ok)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/inventory/1", nil))
			if rec.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.status == http.StatusUnauthorized {
				var body map[string]string
				_ = json.Unmarshal(rec.Body.Bytes(), &body)
				if body["redirect"] != LoginPath {
					t.Errorf("expected redirect to %s, got %v", LoginPath, body)
				}
			}
		})
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(MetricsMiddleware)
	e.GET("/inventory/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory/9", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
