// Package httpapi serves the roulette over HTTP/JSON with echo.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/metrics"
)

type Options struct {
	RateLimit float64 // requests per second; <= 0 disables limiting
	RateBurst int
}

// NewRouter builds the echo instance with middleware, API routes and
// /metrics. Serve it through WithCORS.
func NewRouter(svc *app.RouletteService, logger *slog.Logger, m *metrics.Metrics, opt Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(logger))
	if m != nil {
		e.Use(MetricsMiddleware(m))
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	var limiter *rate.Limiter
	if opt.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opt.RateLimit), opt.RateBurst)
	}
	NewHandler(svc).Register(e, RateLimitMiddleware(limiter, m))
	return e
}

// WithCORS allows cross-origin calls from any page, so share links opened on
// another host can call the API.
func WithCORS(h http.Handler) http.Handler {
	return cors.AllowAll().Handler(h)
}

// errorHandler renders echo's own errors (unknown route, bad method) in the
// API's error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
	}
	if code == http.StatusInternalServerError {
		requestID, _ := c.Get("request_id").(string)
		slog.Error("internal error", "request_id", requestID, "error", err)
	}
	if err := c.JSON(code, ErrorResponse{Error: msg}); err != nil {
		slog.Error("write error response", "error", err)
	}
}
