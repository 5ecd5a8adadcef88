package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/vaughan-dsouza/jemaat/internal/export"
	"github.com/vaughan-dsouza/jemaat/internal/logging"
	"github.com/vaughan-dsouza/jemaat/internal/members"
	"github.com/vaughan-dsouza/jemaat/internal/utils"
)

type ExportHandler struct {
	svc *members.Service
	log logging.Logger
	now func() time.Time
}

func NewExportHandler(svc *members.Service, log logging.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, log: log, now: time.Now}
}

// Members exports every member matching the listing filters. Paging
// parameters are ignored.
func (h *ExportHandler) Members(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	q, err := members.ParseListQuery(r.URL.Query(), members.Limits{Default: 1})
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	list, err := h.svc.All(r.Context(), q.Filter, q.Sort)
	if err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	// rendered up front so a failure can still produce a JSON error
	var buf bytes.Buffer
	now := h.now()
	if err := export.Write(&buf, format, list, now); err != nil {
		utils.WriteError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if format != export.FormatPDF {
		w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(now)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
