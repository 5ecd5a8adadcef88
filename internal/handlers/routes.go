package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/middleware"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

// Routes builds the HTTP API. A positive timeout bounds every request.
func (h *Handler) Routes(timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(h.log))
	r.Use(chimw.Recoverer)
	if timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	requireUser := middleware.RequireUser(h.authSvc, h.log)
	can := func(op auth.Operation) func(http.Handler) http.Handler {
		return middleware.RequireOperation(op, h.log)
	}

	readMembers := requireUser
	if h.opts.PublicListing {
		readMembers = middleware.OptionalUser(h.authSvc, h.log)
	}

	// Public
	r.Get("/health", h.Health.Check)
	r.Post("/auth/signin", h.Auth.SignIn)
	r.Post("/auth/signup", h.Auth.SignUp)

	r.With(readMembers).Get("/members", h.Members.List)
	r.With(readMembers).Get("/members/{id}", h.Members.Get)
	r.With(readMembers).Get("/servants", h.Servants.List)
	r.With(readMembers).Get("/servants/{id}", h.Servants.Get)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Post("/auth/signout", h.Auth.SignOut)
		r.Get("/auth/me", h.Auth.Me)

		r.Get("/members/birthdays", h.Members.Birthdays)
		r.With(can(auth.OpCreateMember)).Post("/members", h.Members.Create)
		r.With(can(auth.OpUpdateMember)).Put("/members/{id}", h.Members.Update)
		r.With(can(auth.OpDeleteMember)).Delete("/members/{id}", h.Members.Delete)
		r.With(can(auth.OpDeleteMember)).Delete("/members", h.Members.DeleteMany)

		r.With(can(auth.OpListUsers)).Get("/admin/users", h.Users.List)
		r.With(can(auth.OpSearchUsers)).Post("/admin/users/search", h.Users.Search)
		r.With(can(auth.OpChangeRole)).Post("/admin/users/role", h.Users.ChangeRole)
		r.With(can(auth.OpDeleteUser)).Delete("/admin/users/{id}", h.Users.Delete)
		r.With(can(auth.OpDeleteUser)).Delete("/admin/users", h.Users.DeleteMany)

		r.With(can(auth.OpExport)).Get("/export/members", h.Export.Members)
		r.With(can(auth.OpDashboard)).Get("/dashboard", h.Dashboard.Stats)

		r.With(can(auth.OpWriteServants)).Post("/servants", h.Servants.Create)
		r.With(can(auth.OpWriteServants)).Put("/servants/{id}", h.Servants.Update)
		r.With(can(auth.OpWriteServants)).Delete("/servants/{id}", h.Servants.Delete)
	})

	return r
}
