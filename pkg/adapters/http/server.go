// Package http exposes fitted recipes as a small apply service:
// upload a fitted recipe, then post datasets against it and get the
// transformed dataset back.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/telemetry"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/recipe"
)

// Server routes apply traffic to a RecipeStore.
type Server struct {
	store   ports.RecipeStore
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler builds the HTTP handler. Collectors are registered on reg;
// the /metrics endpoint serves the same registry.
func NewHandler(store ports.RecipeStore, reg *prometheus.Registry, opts ...Option) http.Handler {
	s := &Server{
		store:   store,
		logger:  logging.NewNop(),
		metrics: telemetry.New(reg),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", s.handleSave)
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/apply", s.handleApply)
		})
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipes": ids})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var fitted recipe.Fitted
	if err := json.NewDecoder(r.Body).Decode(&fitted); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Save(r.Context(), id, &fitted); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.Info("recipe stored", "id", id, "steps", len(fitted.Steps()))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fitted, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fitted)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		s.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fitted, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		s.serverError(w, r, err)
		return
	}

	var ds domain.Dataset
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	out, err := fitted.Apply(&ds)
	s.metrics.ApplyDuration.WithLabelValues(id).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.AppliesTotal.WithLabelValues(id, "error").Inc()
		// Apply failures are data/schema errors from the caller's
		// payload, not server faults.
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.metrics.AppliesTotal.WithLabelValues(id, "ok").Inc()
	s.metrics.RowsOut.Add(float64(out.Rows()))
	s.logger.Info("recipe applied", "id", id, "rows", out.Rows(), "columns", out.Cols())
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
