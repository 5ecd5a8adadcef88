package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vaughan-dsouza/jemaat/internal/apperr"
	"github.com/vaughan-dsouza/jemaat/internal/models"
)

func intp(v int) *int { return &v }

var now = time.Date(2025, 1, 31, 14, 5, 0, 0, time.UTC)

func sample() []models.Member {
	return []models.Member{
		{ID: "m1", Nama: "Ana", Sektor: 2, Kategori: models.CategoryMoria, Day: intp(5), Month: intp(3), Year: intp(1980), Confirmed: true, InArea: true},
		{ID: "m2", Nama: `Budi "B" <b>`, Sektor: 7, Kategori: models.CategoryKAKR, Month: intp(11), NotConfirmed: true, OutsideArea: true, Address: "Jl. A, No. 1"},
		{ID: "m3", Nama: "Citra", Sektor: 1, Kategori: models.CategorySaitun},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, "PDF": FormatPDF, " xlsx ": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("docx")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "data_jemaat_2025-01-31.csv", FormatCSV.Filename(now))
	assert.Equal(t, "data_jemaat_2025-01-31.html", FormatPDF.Filename(now))
	assert.Equal(t, "data_jemaat_2025-01-31.xlsx", FormatXLSX.Filename(now))
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample(), now))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{"m1", "Ana", "2", "MORIA", "05/03/1980", "Sudah", "KBB", ""}, records[1])
	assert.Equal(t, []string{"m2", `Budi "B" <b>`, "7", "KAKR", "?/11/?", "Belum", "Luar KBB", "Jl. A, No. 1"}, records[2])
	assert.Equal(t, []string{"m3", "Citra", "1", "SAITUN", "-", "-", "-", ""}, records[3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil, now))
	assert.Equal(t, strings.Join(header, ",")+"\n", buf.String())
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, sample(), now))

	out := buf.String()
	assert.Contains(t, out, "Total Data: 3")
	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, "<th>Tanggal Lahir</th>")
	assert.Contains(t, out, "Budi &#34;B&#34; &lt;b&gt;")
	assert.NotContains(t, out, "<b>")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sample(), now))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "Luar KBB", rows[2][6])
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("docx"), nil, now)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
