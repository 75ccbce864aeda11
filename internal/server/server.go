// Package server exposes the board over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/riordanpawley/kanban/internal/config"
	"github.com/riordanpawley/kanban/internal/domain"
)

// Service is the task repository behind the API
type Service interface {
	Stats(ctx context.Context) (domain.Stats, error)
	Create(ctx context.Context, column string, f domain.TaskFields) (domain.Task, error)
	Move(ctx context.Context, id int, from, to string) (domain.Task, error)
	Edit(ctx context.Context, id int, column string, p domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id int, column string) (bool, error)
	Reset(ctx context.Context) (*domain.Board, error)
	Export(ctx context.Context) ([]byte, error)
}

// Server wraps the echo instance serving the API
type Server struct {
	echo            *echo.Echo
	svc             Service
	logger          *slog.Logger
	addr            string
	exportName      string
	shutdownTimeout time.Duration
}

// New creates the server and registers its routes
func New(cfg *config.Config, svc Service, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:            e,
		svc:             svc,
		logger:          logger,
		addr:            cfg.Server.Addr,
		exportName:      cfg.Storage.ExportName,
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(s.requestLogger())
	e.Use(GzipRequestMiddleware())

	s.register()
	return s
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// requestLogger logs one line per request through slog
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
