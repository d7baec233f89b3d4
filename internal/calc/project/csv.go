package project

import (
	"encoding/csv"
	"io"
	"strconv"

	"coating-calc/internal/calc/models"
)

// ============================================================
// CSV Export
// ============================================================

var csvHeader = []string{
	"Page", "Type", "Id",
	"Width_mm", "Height_mm", "DoubleSided",
	"Diameter_mm", "Length_m", "Area_m2",
}

// WriteCSV пишет плоскую таблицу результатов с заголовком.
// Незаполненные поля варианта остаются пустыми ячейками.
func WriteCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.Page,
			string(rec.Type),
			rec.ID,
			formatFloat(rec.WidthMM),
			formatFloat(rec.HeightMM),
			formatBool(rec.DoubleSided),
			formatFloat(rec.DiameterMM),
			formatFloat(rec.LengthM),
			strconv.FormatFloat(rec.AreaM2, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
