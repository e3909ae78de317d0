package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cac-forms/internal/common/config"
	"cac-forms/internal/common/logger"
)

// Server is the HTTP listener of the form service.
type Server struct {
	http            *http.Server
	logger          logger.Logger
	shutdownTimeout time.Duration
}

func New(cfg config.ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		logger:          log,
		shutdownTimeout: config.GetDuration(cfg.ShutdownTimeout),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("form server listening", map[string]interface{}{"address": s.http.Addr})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down form server", map[string]interface{}{"timeout": s.shutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
