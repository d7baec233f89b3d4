package engine

import (
	"fmt"
	"math"

	"coating-calc/internal/calc/geometry"
	"coating-calc/internal/calc/models"
)

// ============================================================
// Area Calculator & Result Aggregator
// ============================================================

// Input - снимок состояния активной страницы для одного пересчета.
type Input struct {
	PageLabel string
	PxPerMM   float64
	Scaled    bool // false => масштаб страницы не определен
	Panels    []models.PanelShape
	Posts     []models.PostShape
	Overrides map[string]float64
	Settings  models.Settings
}

// Recompute полностью пересчитывает результаты страницы. Чистая функция:
// вызывается заново при любом изменении фигур, масштаба, настроек или
// диаметров, инкрементальных обновлений нет. Без масштаба возвращает
// пустой ResultSet.
func Recompute(in Input) models.ResultSet {
	rs := models.ResultSet{Objects: []models.MeasuredObject{}}
	if !in.Scaled || in.PxPerMM <= 0 {
		return rs
	}

	var panelTotal, postTotal, lengthTotal float64

	for i, p := range in.Panels {
		widthMM, heightMM := geometry.PanelDimensions(p, in.PxPerMM)
		area := widthMM * heightMM / 1_000_000.0
		if in.Settings.CoatBothSides {
			area *= 2.0
		}
		area = Round(area, 4)

		rs.Objects = append(rs.Objects, models.MeasuredObject{
			Page:   in.PageLabel,
			Kind:   models.KindPanel,
			ID:     fmt.Sprintf("%s-panel-%d", in.PageLabel, i+1),
			AreaM2: area,
			Panel: &models.PanelMeasure{
				WidthMM:     Round(widthMM, 1),
				HeightMM:    Round(heightMM, 1),
				DoubleSided: in.Settings.CoatBothSides,
			},
		})
		panelTotal += area
	}

	for i, p := range in.Posts {
		id := fmt.Sprintf("%s-post-%d", in.PageLabel, i+1)
		lengthMM, lengthM := geometry.PostLength(p, in.PxPerMM)
		diameter := in.Settings.DefaultPostDiameterMM
		if v, ok := in.Overrides[id]; ok {
			diameter = v
		}
		area := Round(math.Pi*diameter*lengthMM/1_000_000.0, 4)
		lengthM = Round(lengthM, 3)

		rs.Objects = append(rs.Objects, models.MeasuredObject{
			Page:   in.PageLabel,
			Kind:   models.KindPost,
			ID:     id,
			AreaM2: area,
			Post: &models.PostMeasure{
				DiameterMM: diameter,
				LengthM:    lengthM,
			},
		})
		postTotal += area
		lengthTotal += lengthM
	}

	rs.PanelAreaTotal = Round(panelTotal, 4)
	rs.PostAreaTotal = Round(postTotal, 4)
	rs.TotalArea = Round(panelTotal+postTotal, 4)
	rs.PostLengthTotal = Round(lengthTotal, 3)
	return rs
}

// Round округляет до заданного числа знаков. Применяется только на границе
// вывода, промежуточные величины не округляются.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
