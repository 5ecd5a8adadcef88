// Package export renders member lists as CSV, a printable HTML page or an
// XLSX workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat defaults to CSV when s is empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatPDF, FormatXLSX:
		return f, nil
	default:
		return "", apperr.Validation("format must be csv, pdf or xlsx")
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename is the download name, e.g. data_jemaat_2025-01-31.csv. The pdf
// format is a print-ready HTML page.
func (f Format) Filename(now time.Time) string {
	ext := string(f)
	if f == FormatPDF {
		ext = "html"
	}
	return "data_jemaat_" + now.Format("2006-01-02") + "." + ext
}

var header = []string{"ID", "Nama", "Sektor", "Kategori", "Tanggal Lahir", "Status Sidi", "Domisili", "Alamat"}

// row flattens a member into the exported columns.
func row(m models.Member) []string {
	return []string{
		m.ID,
		m.Nama,
		strconv.Itoa(m.Sektor),
		string(m.Kategori),
		birthdate(m),
		sidi(m),
		domicile(m),
		m.Address,
	}
}

// birthdate renders dd/mm/yyyy with "?" for unknown parts, or "-".
func birthdate(m models.Member) string {
	if m.Day == nil && m.Month == nil && m.Year == nil {
		return "-"
	}
	part := func(p *int, width int) string {
		if p == nil {
			return "?"
		}
		return fmt.Sprintf("%0*d", width, *p)
	}
	return part(m.Day, 2) + "/" + part(m.Month, 2) + "/" + part(m.Year, 4)
}

func sidi(m models.Member) string {
	switch m.Confirmation() {
	case models.ConfirmationConfirmed:
		return "Sudah"
	case models.ConfirmationUnconfirmed:
		return "Belum"
	default:
		return "-"
	}
}

func domicile(m models.Member) string {
	switch m.Domicile() {
	case models.DomicileInArea:
		return "KBB"
	case models.DomicileOutside:
		return "Luar KBB"
	default:
		return "-"
	}
}

// Write renders members in format f.
func Write(w io.Writer, f Format, members []models.Member, now time.Time) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, members)
	case FormatPDF:
		return writeHTML(w, members, now)
	case FormatXLSX:
		return writeXLSX(w, members)
	default:
		return apperr.Validation("format must be csv, pdf or xlsx")
	}
}
