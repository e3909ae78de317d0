// Package server wires the flow endpoints, probes and metrics into one chi router.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cac-forms/internal/common/logger"
	"cac-forms/internal/common/metrics"
	"cac-forms/pkg/registry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readyTimeout = 2 * time.Second

// FlowHandler is a flow endpoint; every submissions handler satisfies it.
type FlowHandler interface {
	http.Handler
	Flow() registry.Flow
}

// Pinger is a store probed by /readyz.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type Options struct {
	Logger   logger.Logger
	Handlers []FlowHandler
	Stores   []Pinger
	// Registry overrides the paths and aliases of the handlers' flows.
	Registry *registry.FlowRegistry
	// Metrics serves /metrics; promhttp.Handler() when nil.
	Metrics http.Handler
}

// NewRouter mounts every handler on its flow path and aliases. Routes match
// any method so the handlers can answer OPTIONS and 405 themselves.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	for _, h := range opts.Handlers {
		flow := h.Flow()
		if opts.Registry != nil {
			if override, ok := opts.Registry.Find(flow.ID); ok {
				flow = override
			}
		}
		r.Handle(flow.Path, h)
		for _, alias := range flow.Aliases {
			r.Handle(alias, h)
		}
		log.Debug("flow mounted", map[string]interface{}{
			"flow":    flow.ID,
			"path":    flow.Path,
			"aliases": flow.Aliases,
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Get("/readyz", readiness(opts.Stores, log))
	r.Handle("/metrics", metricsHandler)

	return r
}

func readiness(stores []Pinger, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(stores))
		for _, s := range stores {
			if err := s.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				checks[s.Name()] = "unavailable"
				log.WithError(err).Warn("store not ready", map[string]interface{}{"store": s.Name()})
				continue
			}
			checks[s.Name()] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		writeStatus(w, status, map[string]interface{}{
			"status": state,
			"stores": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
				"remote_addr": r.RemoteAddr,
			}
			if status >= http.StatusInternalServerError {
				log.Warn("request completed", fields)
				return
			}
			log.Info("request completed", fields)
		})
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
