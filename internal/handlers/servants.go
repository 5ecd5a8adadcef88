package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/servants"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type ServantHandler struct {
	svc *servants.Service
	log logging.Logger
}

func NewServantHandler(svc *servants.Service, log logging.Logger) *ServantHandler {
	return &ServantHandler{svc: svc, log: log}
}

func (h *ServantHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"data": list})
}

// Get answers 200 with a null data field for unknown ids.
func (h *ServantHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			utils.JSON(w, http.StatusOK, map[string]any{"data": nil})
			return
		}
		utils.WriteError(w, r, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"data": s})
}

func (h *ServantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in servants.Input
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	s, err := h.svc.Create(r.Context(), in)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "servant created", "id": s.ID})
}

func (h *ServantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in servants.Input
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	if _, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "servant updated"})
}

func (h *ServantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "servant deleted"})
}
