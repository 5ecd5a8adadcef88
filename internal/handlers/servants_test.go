package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServants_CRUD(t *testing.T) {
	api := newAPI(t, false)
	_, admin, _, user := api.adminAndUser()

	rec := api.do(http.MethodPost, "/servants", admin, map[string]any{
		"no": 1, "gelar": "Pdt. Yohanes", "jabatan": "Ketua Majelis", "noHp": "0812",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := decode(t, rec)["id"].(string)

	rec = api.do(http.MethodGet, "/servants", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)["data"].([]any)
	require.Len(t, list, 1)
	entry := list[0].(map[string]any)
	assert.Equal(t, "Pdt. Yohanes", entry["gelar"])
	assert.Equal(t, "-", entry["sektorLayan"])

	rec = api.do(http.MethodPut, "/servants/"+id, admin, map[string]any{
		"gelar": "Pdt. Yohanes", "jabatan": "Sekretaris", "sektorLayan": "2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/servants/"+id, user, nil)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Sekretaris", data["jabatan"])
	assert.Nil(t, data["no"])

	rec = api.do(http.MethodPost, "/servants", admin, map[string]any{"gelar": "Dkn. Ana"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/servants/"+id, admin, nil).Code)

	rec = api.do(http.MethodGet, "/servants/"+id, user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["data"])

	rec = api.do(http.MethodPut, "/servants/"+id, admin, map[string]any{"gelar": "x", "jabatan": "y"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServants_Authorization(t *testing.T) {
	api := newAPI(t, false)
	_, _, _, user := api.adminAndUser()

	body := map[string]any{"gelar": "Pdt. Yohanes", "jabatan": "Ketua"}
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/servants", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/servants", "", body).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/servants", user, body).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPut, "/servants/x", user, body).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, "/servants/x", user, nil).Code)

	public := newAPI(t, true)
	assert.Equal(t, http.StatusOK, public.do(http.MethodGet, "/servants", "", nil).Code)
}
