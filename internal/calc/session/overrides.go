package session

// ============================================================
// Override Store
// ============================================================

// Overrides хранит заданные пользователем диаметры по id объекта.
// Записи живут до конца сессии и не удаляются вместе с объектом: id
// выводится из порядка рисования, поэтому после перерисовки старое
// переопределение может совпасть по id с уже другим столбом.
type Overrides struct {
	diameters map[string]float64
}

func NewOverrides() *Overrides {
	return &Overrides{
		diameters: make(map[string]float64),
	}
}

// Resolve возвращает переопределенный диаметр либо переданный по умолчанию.
func (o *Overrides) Resolve(id string, defaultMM float64) float64 {
	if v, ok := o.diameters[id]; ok {
		return v
	}
	return defaultMM
}

func (o *Overrides) Get(id string) (float64, bool) {
	v, ok := o.diameters[id]
	return v, ok
}

func (o *Overrides) Set(id string, diameterMM float64) {
	o.diameters[id] = diameterMM
}

// Snapshot отдает копию таблицы переопределений.
func (o *Overrides) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(o.diameters))
	for k, v := range o.diameters {
		out[k] = v
	}
	return out
}

// Replace заменяет таблицу целиком (импорт проекта).
func (o *Overrides) Replace(diameters map[string]float64) {
	o.diameters = make(map[string]float64, len(diameters))
	for k, v := range diameters {
		o.diameters[k] = v
	}
}
