package scale

import (
	"coating-calc/internal/calc/geometry"
	"coating-calc/internal/calc/models"
)

// ============================================================
// Scale Resolver
// ============================================================

// Table хранит один масштаб (px/mm) на страницу. Не потокобезопасна,
// доступ сериализуется владельцем (сессией).
type Table struct {
	pxPerMM map[int]float64
}

func NewTable() *Table {
	return &Table{
		pxPerMM: make(map[int]float64),
	}
}

// Resolve вычисляет масштаб страницы по калибровочным линиям.
// Берется самая длинная линия; если она невырождена и целевая длина
// положительна, масштаб сохраняется поверх прежнего. Иначе возвращается
// ранее сохраненный масштаб (ok=false, если его не было).
// Нулевая линия или нулевая длина никогда не затирают сохраненное значение.
func (t *Table) Resolve(page int, lines []models.CalibrationLine, targetMM float64) (float64, bool) {
	var maxLen float64
	for _, l := range lines {
		if n := geometry.SegmentLength(l.X1, l.Y1, l.X2, l.Y2); n > maxLen {
			maxLen = n
		}
	}

	if maxLen > 0 && targetMM > 0 {
		v := maxLen / targetMM
		t.pxPerMM[page] = v
		return v, true
	}

	return t.Get(page)
}

// Get возвращает сохраненный масштаб страницы.
func (t *Table) Get(page int) (float64, bool) {
	v, ok := t.pxPerMM[page]
	return v, ok
}

// Snapshot отдает копию таблицы.
func (t *Table) Snapshot() map[int]float64 {
	out := make(map[int]float64, len(t.pxPerMM))
	for k, v := range t.pxPerMM {
		out[k] = v
	}
	return out
}

// Replace заменяет таблицу целиком (импорт проекта).
func (t *Table) Replace(scales map[int]float64) {
	t.pxPerMM = make(map[int]float64, len(scales))
	for k, v := range scales {
		t.pxPerMM[k] = v
	}
}
