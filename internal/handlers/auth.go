package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/middleware"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type AuthHandler struct {
	svc *auth.Service
	log logging.Logger
}

func NewAuthHandler(svc *auth.Service, log logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// -------------- SIGN IN ----------------------

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	sess, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, sess)
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req auth.SignUpInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	if _, err := h.svc.SignUp(r.Context(), req); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "user created successfully",
	})
}

// -------------- SIGN OUT (protected) ---------

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	u, err := middleware.MustUser(r.Context())
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	if err := h.svc.SignOut(r.Context(), u); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := middleware.MustUser(r.Context())
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"user": u.Public()})
}
