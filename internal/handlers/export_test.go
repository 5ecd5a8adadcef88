package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	api := newAPI(t, false)
	_, admin, _, user := api.adminAndUser()

	for _, body := range []map[string]any{
		{"nama": "Ana", "sektor": 1, "kategori": "KAKR", "confirmed": true},
		{"nama": "Budi", "sektor": 2, "kategori": "MORIA"},
	} {
		require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/members", admin, body).Code)
	}

	rec := api.do(http.MethodGet, "/export/members?format=csv&sektor=1", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ana", records[1][1])
	assert.Equal(t, "Sudah", records[1][5])

	rec = api.do(http.MethodGet, "/export/members?format=pdf", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total Data: 2")

	rec = api.do(http.MethodGet, "/export/members?format=xlsx", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "xlsx is a zip container")

	rec = api.do(http.MethodGet, "/export/members?format=docx", user, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/export/members", "", nil).Code)
}

func TestDashboardAndHealth(t *testing.T) {
	api := newAPI(t, false)
	_, admin, _, user := api.adminAndUser()

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/members", admin, map[string]any{
		"nama": "Ana", "sektor": 4, "kategori": "MAMRE", "inArea": true,
	}).Code)

	rec := api.do(http.MethodGet, "/dashboard", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 1.0, body["totals"].(map[string]any)["members"])
	assert.Len(t, body["sectors"], 7)
	assert.Len(t, body["incompleteBirthdates"], 1)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/dashboard", "", nil).Code)

	rec = api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
