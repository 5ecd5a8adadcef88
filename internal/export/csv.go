package export

import (
	"encoding/csv"
	"io"

	"github.com/vaughan-dsouza/jemaat/internal/models"
)

func writeCSV(w io.Writer, members []models.Member) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range members {
		if err := cw.Write(row(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
