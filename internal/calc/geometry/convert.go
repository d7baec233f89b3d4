package geometry

import (
	"math"

	"coating-calc/internal/calc/models"
)

// ============================================================
// Geometry Converter
// ============================================================

// Конвертация пиксельных фигур в физические размеры. Все функции чистые,
// вызываются только при известном масштабе страницы (pxPerMM > 0).

// SegmentLength считает евклидову длину отрезка в пикселях.
func SegmentLength(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// PanelDimensions переводит прямоугольник в миллиметры.
// ScaleX/ScaleY учитывают трансформацию canvas, модуль защищает от
// отрицательных width/height при рисовании "в обратную сторону".
func PanelDimensions(p models.PanelShape, pxPerMM float64) (widthMM, heightMM float64) {
	widthMM = math.Abs(p.WidthPx) * p.ScaleX / pxPerMM
	heightMM = math.Abs(p.HeightPx) * p.ScaleY / pxPerMM
	return widthMM, heightMM
}

// PostLength переводит отрезок столба в миллиметры и метры.
func PostLength(p models.PostShape, pxPerMM float64) (lengthMM, lengthM float64) {
	lengthMM = SegmentLength(p.X1, p.Y1, p.X2, p.Y2) / pxPerMM
	return lengthMM, lengthMM / 1000.0
}
