package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/jemaat/internal/dashboard"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type DashboardHandler struct {
	svc *dashboard.Service
	log logging.Logger
}

func NewDashboardHandler(svc *dashboard.Service, log logging.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, stats)
}
