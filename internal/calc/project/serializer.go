package project

import (
	"encoding/json"
	"fmt"
	"strconv"

	"coating-calc/internal/calc/engine"
	"coating-calc/internal/calc/models"
	"coating-calc/internal/calc/session"
)

// ============================================================
// Project Serializer
// ============================================================

// Export собирает переносимый документ проекта из состояния сессии.
func Export(s *session.Session) models.ProjectDocument {
	scales, overrides, results, settings := s.Snapshot()

	pageScales := make(map[string]float64, len(scales))
	for page, v := range scales {
		pageScales[strconv.Itoa(page)] = v
	}

	return models.ProjectDocument{
		PageScales:        pageScales,
		DiameterOverrides: overrides,
		Results:           Records(results),
		Settings:          settings,
	}
}

// Parse разбирает и проверяет документ проекта. Любая ошибка означает
// models.ErrMalformedDocument; валидный документ возвращается целиком,
// частичного разбора нет.
func Parse(data []byte) (*models.ProjectDocument, error) {
	var doc models.ProjectDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}

	for key, v := range doc.PageScales {
		page, err := strconv.Atoi(key)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("%w: bad page index %q", models.ErrMalformedDocument, key)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%w: page %q: px_per_mm must be positive", models.ErrMalformedDocument, key)
		}
	}

	for id, v := range doc.DiameterOverrides {
		if id == "" {
			return nil, fmt.Errorf("%w: empty override id", models.ErrMalformedDocument)
		}
		if v < 1 {
			return nil, fmt.Errorf("%w: override %q: diameter below 1 mm", models.ErrMalformedDocument, id)
		}
	}

	for i, rec := range doc.Results {
		switch rec.Type {
		case models.KindPanel, models.KindPost:
		default:
			return nil, fmt.Errorf("%w: record %d: unknown type %q", models.ErrMalformedDocument, i, rec.Type)
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d: empty id", models.ErrMalformedDocument, i)
		}
	}

	if doc.Settings.DefaultPostDiameterMM < 1 {
		return nil, fmt.Errorf("%w: default diameter below 1 mm", models.ErrMalformedDocument)
	}

	return &doc, nil
}

// Import заменяет состояние сессии содержимым документа. Документ уже
// проверен Parse, поэтому замена не может завершиться на полпути.
func Import(s *session.Session, doc *models.ProjectDocument) {
	scales := make(map[int]float64, len(doc.PageScales))
	for key, v := range doc.PageScales {
		page, _ := strconv.Atoi(key)
		scales[page] = v
	}

	s.Restore(scales, doc.DiameterOverrides, toResultSet(doc.Results), doc.Settings)
}

// Records раскладывает ResultSet в плоские строки экспорта.
func Records(rs models.ResultSet) []models.Record {
	records := make([]models.Record, 0, len(rs.Objects))
	for _, obj := range rs.Objects {
		rec := models.Record{
			Page:   obj.Page,
			Type:   obj.Kind,
			ID:     obj.ID,
			AreaM2: obj.AreaM2,
		}
		switch obj.Kind {
		case models.KindPanel:
			rec.WidthMM = ptr(obj.Panel.WidthMM)
			rec.HeightMM = ptr(obj.Panel.HeightMM)
			rec.DoubleSided = ptr(obj.Panel.DoubleSided)
		case models.KindPost:
			rec.DiameterMM = ptr(obj.Post.DiameterMM)
			rec.LengthM = ptr(obj.Post.LengthM)
		}
		records = append(records, rec)
	}
	return records
}

// toResultSet восстанавливает ResultSet из плоских строк документа.
// Агрегаты пересчитываются по строкам: живой геометрии после импорта нет.
func toResultSet(records []models.Record) models.ResultSet {
	rs := models.ResultSet{Objects: make([]models.MeasuredObject, 0, len(records))}

	for _, rec := range records {
		obj := models.MeasuredObject{
			Page:   rec.Page,
			Kind:   rec.Type,
			ID:     rec.ID,
			AreaM2: rec.AreaM2,
		}
		switch rec.Type {
		case models.KindPanel:
			obj.Panel = &models.PanelMeasure{
				WidthMM:     deref(rec.WidthMM),
				HeightMM:    deref(rec.HeightMM),
				DoubleSided: rec.DoubleSided != nil && *rec.DoubleSided,
			}
			rs.PanelAreaTotal += rec.AreaM2
		case models.KindPost:
			obj.Post = &models.PostMeasure{
				DiameterMM: deref(rec.DiameterMM),
				LengthM:    deref(rec.LengthM),
			}
			rs.PostAreaTotal += rec.AreaM2
			rs.PostLengthTotal += deref(rec.LengthM)
		}
		rs.Objects = append(rs.Objects, obj)
	}

	rs.TotalArea = engine.Round(rs.PanelAreaTotal+rs.PostAreaTotal, 4)
	rs.PanelAreaTotal = engine.Round(rs.PanelAreaTotal, 4)
	rs.PostAreaTotal = engine.Round(rs.PostAreaTotal, 4)
	rs.PostLengthTotal = engine.Round(rs.PostLengthTotal, 3)
	return rs
}

func ptr[T any](v T) *T {
	return &v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
