// Package http exposes the fleet core over a REST interface. It is a thin
// adapter: it parses and validates requests, invokes the core, and maps the
// core's error taxonomy to status codes. It never invents failure kinds.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/robofleet/robofleet"
	"github.com/robofleet/robofleet/internal/logging"
	"github.com/robofleet/robofleet/internal/metrics"
	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/ports"
)

// Server holds the handler dependencies.
type Server struct {
	fleet   ports.Fleet
	logger  *slog.Logger
	apiInfo string
}

// Option configures the handler.
type Option func(*handlerConfig)

type handlerConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithMetrics enables the Prometheus middleware and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *handlerConfig) {
		c.metrics = m
	}
}

// NewHandler builds the HTTP handler for the fleet. Requests under /robots
// are validated against the embedded OpenAPI document before reaching the
// core.
func NewHandler(fleet ports.Fleet, opts ...Option) (http.Handler, error) {
	cfg := handlerConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc, err := loadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	validate, err := validationMiddleware(doc, cfg.logger)
	if err != nil {
		return nil, err
	}

	server := &Server{
		fleet:   fleet,
		logger:  cfg.logger,
		apiInfo: doc.Info.Version,
	}

	r := chi.NewRouter()
	if cfg.metrics != nil {
		r.Use(cfg.metrics.Middleware)
	}
	r.Use(validate)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics.Handler())
	}

	// API documentation
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openAPISpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Route("/robots", func(r chi.Router) {
		r.Get("/", server.ListRobots)
		r.Post("/", server.ProvisionRobot)
		r.Route("/{robotId}", func(r chi.Router) {
			r.Get("/status", server.GetStatus)
			r.Post("/move", server.MoveRobot)
			r.Patch("/state", server.PatchState)
			r.Post("/pickup/{itemId}", server.PickupItem)
			r.Post("/putdown/{itemId}", server.PutdownItem)
			r.Post("/attack/{targetId}", server.AttackRobot)
			r.Get("/actions", server.ListActions)
		})
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListRobots handles GET /robots.
func (s *Server) ListRobots(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.fleet.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snaps)
}

// ProvisionRobot handles POST /robots.
func (s *Server) ProvisionRobot(w http.ResponseWriter, r *http.Request) {
	var req domain.ProvisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorEnvelope(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
			s.logger.Warn("ProvisionRobot: invalid request body", "err", err)
			return
		}
	}

	snap, err := s.fleet.Provision(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

// GetStatus handles GET /robots/{robotId}/status.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	robotID := chi.URLParam(r, "robotId")

	snap, err := s.fleet.Get(r.Context(), robotID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		Snapshot: snap,
		Links:    statusLinks(robotID),
	})
}

// statusResponse decorates a snapshot with hypermedia links.
type statusResponse struct {
	domain.Snapshot
	Links map[string]Link `json:"_links"`
}

// MoveRobot handles POST /robots/{robotId}/move.
func (s *Server) MoveRobot(w http.ResponseWriter, r *http.Request) {
	robotID := chi.URLParam(r, "robotId")

	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorEnvelope(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		s.logger.Warn("MoveRobot: invalid request body", "err", err)
		return
	}

	snap, err := s.fleet.Move(r.Context(), robotID, domain.Direction(body.Direction))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// PatchState handles PATCH /robots/{robotId}/state.
func (s *Server) PatchState(w http.ResponseWriter, r *http.Request) {
	robotID := chi.URLParam(r, "robotId")

	var patch domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorEnvelope(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		s.logger.Warn("PatchState: invalid request body", "err", err)
		return
	}

	snap, err := s.fleet.PatchState(r.Context(), robotID, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// PickupItem handles POST /robots/{robotId}/pickup/{itemId}.
func (s *Server) PickupItem(w http.ResponseWriter, r *http.Request) {
	snap, err := s.fleet.Pickup(r.Context(), chi.URLParam(r, "robotId"), chi.URLParam(r, "itemId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// PutdownItem handles POST /robots/{robotId}/putdown/{itemId}.
func (s *Server) PutdownItem(w http.ResponseWriter, r *http.Request) {
	snap, err := s.fleet.Putdown(r.Context(), chi.URLParam(r, "robotId"), chi.URLParam(r, "itemId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// AttackRobot handles POST /robots/{robotId}/attack/{targetId}.
func (s *Server) AttackRobot(w http.ResponseWriter, r *http.Request) {
	result, err := s.fleet.Attack(r.Context(), chi.URLParam(r, "robotId"), chi.URLParam(r, "targetId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// ListActions handles GET /robots/{robotId}/actions.
func (s *Server) ListActions(w http.ResponseWriter, r *http.Request) {
	robotID := chi.URLParam(r, "robotId")

	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeErrorEnvelope(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}
	size, err := queryInt(r, "size", 5)
	if err != nil {
		writeErrorEnvelope(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	result, err := s.fleet.ListActions(r.Context(), robotID, page, size)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, actionsResponse{
		ActionPage: result,
		Links:      pageLinks(robotID, result.Page, result.Size, result.TotalPages),
	})
}

// actionsResponse decorates an action page with hypermedia links.
type actionsResponse struct {
	domain.ActionPage
	Links map[string]Link `json:"_links"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "robofleet",
		"version":     strings.TrimSpace(robofleet.Version),
		"api_version": s.apiInfo,
	})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps the core's error taxonomy to status codes. Unknown errors
// surface as 500 without leaking details.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind, status := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("operation failed", "err", err)
		writeErrorEnvelope(w, status, kind, "internal error")
		return
	}
	writeErrorEnvelope(w, status, kind, err.Error())
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument", http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientEnergy):
		return "insufficient_energy", http.StatusConflict
	case errors.Is(err, domain.ErrIncapacitated):
		return "incapacitated", http.StatusConflict
	case errors.Is(err, domain.ErrConflict):
		return "conflict", http.StatusConflict
	case errors.Is(err, domain.ErrNotHeld):
		return "not_held", http.StatusBadRequest
	default:
		return "internal", http.StatusInternalServerError
	}
}

func writeErrorEnvelope(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"kind":    kind,
			"message": message,
		},
	})
}
