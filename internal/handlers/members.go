package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/members"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type MemberHandler struct {
	svc    *members.Service
	limits members.Limits
	log    logging.Logger
}

func NewMemberHandler(svc *members.Service, limits members.Limits, log logging.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, limits: limits, log: log}
}

// memberView adds the enum form of the flag pairs to the stored member.
type memberView struct {
	models.Member
	ConfirmationStatus models.Confirmation `json:"confirmation"`
	DomicileStatus     models.Domicile     `json:"domicile"`
}

func viewOf(m models.Member) memberView {
	return memberView{
		Member:             m,
		ConfirmationStatus: m.Confirmation(),
		DomicileStatus:     m.Domicile(),
	}
}

func viewsOf(list []models.Member) []memberView {
	out := make([]memberView, len(list))
	for i, m := range list {
		out[i] = viewOf(m)
	}
	return out
}

// ---------------------- LIST ----------------------

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := members.ParseListQuery(r.URL.Query(), h.limits)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{
		"data":       viewsOf(page.Data),
		"pagination": page.Pagination,
	})
}

// ---------------------- GET ONE ----------------------

// Get answers 200 with a null data field for unknown ids.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			utils.JSON(w, http.StatusOK, map[string]any{"data": nil})
			return
		}
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"data": viewOf(*m)})
}

// ---------------------- BIRTHDAYS ----------------------

func (h *MemberHandler) Birthdays(w http.ResponseWriter, r *http.Request) {
	month := 0
	if s := r.URL.Query().Get("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			utils.WriteError(w, r, h.log, apperr.Validation("month must be between 1 and 12"))
			return
		}
		month = n
	}

	list, err := h.svc.Birthdays(r.Context(), month)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"birthdays": viewsOf(list)})
}

// ---------------------- CREATE ----------------------

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in members.Input
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	m, err := h.svc.Create(r.Context(), in)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "member created",
		"id":      m.ID,
	})
}

// ---------------------- UPDATE ----------------------

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in members.Input
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	if _, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "member updated"})
}

// ---------------------- DELETE ----------------------

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "member deleted"})
}

type idsReq struct {
	IDs []string `json:"ids"`
}

func (h *MemberHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req idsReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}
	if req.IDs == nil {
		utils.WriteError(w, r, h.log, apperr.Validation("ids is required"))
		return
	}

	n, err := h.svc.Delete(r.Context(), req.IDs...)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": strconv.FormatInt(n, 10) + " members deleted",
	})
}
