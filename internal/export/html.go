package export

import (
	"html/template"
	"io"
	"time"

	"github.com/vaughan-dsouza/jemaat/internal/models"
)

var printTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Data Jemaat</title>
<style>body{font-family:sans-serif}table{width:100%;border-collapse:collapse}th,td{border:1px solid #ddd;padding:8px;text-align:left}th{background:#f2f2f2}</style>
</head><body onload="window.print()">
<h2>Data Jemaat</h2>
<p>Total Data: {{len .Rows}} &middot; {{.Generated}}</p>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body></html>
`))

func writeHTML(w io.Writer, members []models.Member, now time.Time) error {
	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = row(m)
	}
	return printTmpl.Execute(w, struct {
		Header    []string
		Rows      [][]string
		Generated string
	}{header, rows, now.Format("02/01/2006 15:04")})
}
