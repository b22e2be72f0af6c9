// Package server exposes the journal over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"journal-go/internal/config"
	"journal-go/internal/journal"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr              string
	JWTSecret         []byte
	RateLimit         float64 // LLM requests per second per client IP
	RateBurst         int
	DefaultWindowDays int
	Logger            *slog.Logger
	Metrics           *Metrics
}

// Server is the journal HTTP API.
type Server struct {
	e       *echo.Echo
	svc     *journal.Service
	opts    Options
	logger  *slog.Logger
	metrics *Metrics
}

// New builds the router. ctx bounds background work such as rate limiter cleanup.
func New(ctx context.Context, svc *journal.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.DefaultWindowDays <= 0 {
		opts.DefaultWindowDays = config.DefaultWindowDays
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = config.DefaultRateLimit
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = config.DefaultRateBurst
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	s := &Server{e: e, svc: svc, opts: opts, logger: opts.Logger, metrics: opts.Metrics}
	e.HTTPErrorHandler = s.handleError
	e.Use(s.observe)

	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))

	limiter := NewRateLimiter(ctx, rate.Limit(opts.RateLimit), opts.RateBurst)
	api := e.Group("/api", RequireJWT(opts.JWTSecret))
	api.GET("/entries", s.listEntries)
	api.GET("/entries/today", s.todayEntry)
	api.GET("/entries/:date", s.entryForDate)
	api.POST("/entries", s.writeEntry, limiter.Middleware())
	api.GET("/trends", s.trends)
	api.GET("/calendar", s.calendar)
	api.GET("/tags", s.tags)
	api.POST("/reflection-prompt", s.reflectionPrompt, limiter.Middleware())
	api.POST("/writing-help", s.writingHelp, limiter.Middleware())

	return s
}

// Handler returns the router for use with httptest.
func (s *Server) Handler() http.Handler { return s.e }

// Run serves on opts.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.opts.Addr)
		if err := s.e.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.e.Shutdown(shutdownCtx)
}

// observe handles errors in place so the final status is known, then
// records the request in the log and the metrics.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		elapsed := time.Since(start)

		s.metrics.RecordRequest(c.Request().Method, route, status, elapsed)
		s.logger.Debug("request", "method", c.Request().Method, "route", route, "status", status, "duration", elapsed)
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	case errors.Is(err, journal.ErrEmptyContent), errors.Is(err, journal.ErrInvalidWindow):
		code = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, journal.ErrNoEntryToday):
		code = http.StatusNotFound
		msg = err.Error()
	default:
		s.logger.Error("request failed", "route", c.Path(), "error", err)
	}

	if err := c.JSON(code, errorResponse{Error: msg}); err != nil {
		s.logger.Error("writing error response", "error", err)
	}
}

type requestValidator struct {
	v *validator.Validate
}

// newRequestValidator reports fields by their json or query name.
func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	if err := rv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max":
		return fe.Field() + " must be " + fe.Tag() + " " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
