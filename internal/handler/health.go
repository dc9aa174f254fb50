package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/templui/pomodoro-challenge/internal/ctxkeys"
	"github.com/templui/pomodoro-challenge/internal/db"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(database *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

type healthResponse struct {
	App           string `json:"app"`
	Env           string `json:"env"`
	SchemaVersion int64  `json:"schema_version"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	cfg := ctxkeys.Config(r.Context())

	err := h.db.PingContext(r.Context())
	if err != nil {
		slog.Error("health check failed", "error", err)
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	version, err := db.MigrationVersion(h.db.DB, cfg.DBDriver)
	if err != nil {
		slog.Error("failed to read schema version", "error", err)
		http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		App:           cfg.AppName,
		Env:           cfg.AppEnv,
		SchemaVersion: version,
	})
}
