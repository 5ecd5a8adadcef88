package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/jemaat/internal/auth"
	"github.com/vaughan-dsouza/jemaat/internal/db/dbtest"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/members"
	"github.com/vaughan-dsouza/jemaat/internal/models"
	"github.com/vaughan-dsouza/jemaat/internal/store"
)

type testAPI struct {
	t       *testing.T
	db      *sqlx.DB
	handler http.Handler
}

func newAPI(t *testing.T, public bool) *testAPI {
	t.Helper()
	conn := dbtest.NewSQLite(t)
	h := NewHandler(conn, logging.Discard(), Options{
		SecretKey:     "test-secret",
		Limits:        members.Limits{Default: 15, Max: 100},
		PublicListing: public,
	})
	return &testAPI{t: t, db: conn, handler: h.Routes(5 * time.Second)}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// seedUser inserts a user with the given role and returns its id.
func (a *testAPI) seedUser(email, password string, role models.Role) string {
	a.t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(a.t, err)

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: sql.NullString{String: hash, Valid: true},
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(a.t, store.NewUsers(a.db).Create(context.Background(), u))
	return u.ID
}

func (a *testAPI) signIn(email, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(a.t, rec)["token"].(string)
}

func (a *testAPI) adminAndUser() (adminID, adminToken, userID, userToken string) {
	adminID = a.seedUser("admin@example.com", "admin-pw", models.RoleAdmin)
	userID = a.seedUser("user@example.com", "user-pw", models.RoleUser)
	return adminID, a.signIn("admin@example.com", "admin-pw"), userID, a.signIn("user@example.com", "user-pw")
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(a *testAPI, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}
