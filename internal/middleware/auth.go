package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type ctxKey string

const ctxUserKey ctxKey = "user"

// authHeaders are checked in order; proxies that strip Authorization often
// forward it under one of the others.
var authHeaders = []string{
	"Authorization",
	"X-Authorization",
	"X-Forwarded-Authorization",
	"Redirect-Http-Authorization",
}

// BearerToken extracts the token from the first non-empty authorization
// header. The scheme is case-insensitive. It returns "" when no usable
// bearer token is present.
func BearerToken(r *http.Request) string {
	for _, h := range authHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		parts := strings.SplitN(v, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireUser rejects requests without a valid token and stores the user in
// the request context.
func RequireUser(a Authenticator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := a.Authenticate(r.Context(), BearerToken(r))
			if err != nil {
				utils.WriteError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// OptionalUser attaches the user when a valid token is sent and passes
// anonymous requests through. Invalid tokens are still rejected.
func OptionalUser(a Authenticator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			u, err := a.Authenticate(r.Context(), token)
			if err != nil {
				utils.WriteError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireOperation runs after RequireUser and applies the authorization gate.
func RequireOperation(op auth.Operation, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(UserFrom(r.Context()), op); err != nil {
				utils.WriteError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

// UserFrom returns the authenticated user, or nil.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxUserKey).(*models.User)
	return u
}

// MustUser is UserFrom for handlers mounted behind RequireUser.
func MustUser(ctx context.Context) (*models.User, error) {
	if u := UserFrom(ctx); u != nil {
		return u, nil
	}
	return nil, apperr.ErrMissingToken
}
