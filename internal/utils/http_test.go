package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("nama is required"), http.StatusBadRequest, "nama is required"},
		{apperr.ErrInvalidToken, http.StatusUnauthorized, "unauthorized: invalid token"},
		{apperr.ErrAdminRequired, http.StatusForbidden, "forbidden: admin access required"},
		{apperr.ErrEmailTaken, http.StatusConflict, "email already exists"},
		{apperr.NotFound("member not found"), http.StatusNotFound, "member not found"},
		{apperr.Storage("list members", errors.New(`pq: relation "members" does not exist`)), http.StatusInternalServerError, "internal error"},
		{errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		WriteError(rec, req, logging.Discard(), tt.err)

		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"error": tt.msg}, body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	decode := func(body string) (payload, error) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSON(httptest.NewRecorder(), req, &p)
		return p, err
	}

	p, err := decode(`{"email":"a@b.c"}`)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", p.Email)

	for _, bad := range []string{``, `{`, `{"email":1}`, `{"email":"a","role":"admin"}`, `{"email":"a"}{}`, `[]`} {
		_, err := decode(bad)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), bad)
	}

	_, err = decode(`{"email":"` + strings.Repeat("a", maxBodyBytes) + `"}`)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
