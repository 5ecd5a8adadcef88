package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/middleware"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/users"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type UserHandler struct {
	svc *users.Service
	log logging.Logger
}

func NewUserHandler(svc *users.Service, log logging.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.UserFrom(r.Context()))
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

type searchReq struct {
	Keyword string `json:"keyword"`
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	list, err := h.svc.Search(r.Context(), middleware.UserFrom(r.Context()), req.Keyword)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

type roleReq struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req roleReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	if err := h.svc.ChangeRole(r.Context(), middleware.UserFrom(r.Context()), req.UserID, req.Role); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "role updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.UserFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "user deleted"})
}

type deleteUsersReq struct {
	ID  string   `json:"id"`
	IDs []string `json:"ids"`
}

// DeleteMany accepts {"ids": [...]}, {"id": "..."} or ?id=.
func (h *UserHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req deleteUsersReq
	if id := r.URL.Query().Get("id"); id != "" {
		req.ID = id
	} else if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	ids := req.IDs
	if req.ID != "" {
		ids = append(ids, req.ID)
	}
	if ids == nil {
		utils.WriteError(w, r, h.log, apperr.Validation("ids is required"))
		return
	}

	n, err := h.svc.DeleteMany(r.Context(), middleware.UserFrom(r.Context()), ids)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": strconv.FormatInt(n, 10) + " users deleted",
	})
}
