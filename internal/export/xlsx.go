package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vaughan-dsouza/jemaat/internal/models"
)

const sheetName = "Jemaat"

func writeXLSX(w io.Writer, members []models.Member) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := setRow(f, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return err
	}

	for i, m := range members {
		if err := setRow(f, i+2, row(m)); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheetName, cell, &cells)
}
