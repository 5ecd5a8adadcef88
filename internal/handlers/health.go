package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type HealthHandler struct {
	DB  *sqlx.DB
	log logging.Logger
}

func NewHealthHandler(db *sqlx.DB, log logging.Logger) *HealthHandler {
	return &HealthHandler{DB: db, log: log}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		h.log.Error(r.Context(), "health check failed", "err", err)
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": "database unavailable"})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
