package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantahq/jobscout/application/service"
	"github.com/vantahq/jobscout/internal/database"
)

// SystemRouter exposes health probes and queue depth.
type SystemRouter struct {
	db     database.Database
	queue  *service.Queue
	logger *slog.Logger
}

// NewSystemRouter creates a new SystemRouter.
func NewSystemRouter(db database.Database, queue *service.Queue, logger *slog.Logger) *SystemRouter {
	return &SystemRouter{db: db, queue: queue, logger: logger}
}

// Routes returns the system route tree.
func (s *SystemRouter) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/readyz", s.ready)
	r.Get("/queue", s.queueDepth)
	return r
}

func (s *SystemRouter) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ready reports whether the database answers.
func (s *SystemRouter) ready(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := s.db.GORM().DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		s.logger.Warn("readiness probe failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *SystemRouter) queueDepth(w http.ResponseWriter, r *http.Request) {
	pending, err := s.queue.Count(r.Context())
	if err != nil {
		s.logger.Error("failed to count pending tasks", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "queue unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": pending})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
