package models

// ============================================================
// Input shapes (pixel space)
// ============================================================

// Shapes приходят из внешнего canvas-редактора как есть, в пикселях.
// Поля повторяют json объектов canvas.

type PanelShape struct {
	WidthPx  float64 `json:"width_px"`
	HeightPx float64 `json:"height_px"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
}

type PostShape struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// CalibrationLine - опорный отрезок известной реальной длины.
type CalibrationLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// PageShapes - все фигуры, нарисованные на одной странице.
type PageShapes struct {
	Panels []PanelShape `json:"panels"`
	Posts  []PostShape  `json:"posts"`
}

// ============================================================
// Measured objects
// ============================================================

type ObjectKind string

const (
	KindPanel ObjectKind = "Panel"
	KindPost  ObjectKind = "Post"
)

// PanelMeasure - панель: ширина x высота, опционально двухсторонняя покраска.
type PanelMeasure struct {
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	DoubleSided bool    `json:"double_sided"`
}

// PostMeasure - столб/труба: боковая поверхность цилиндра.
type PostMeasure struct {
	DiameterMM float64 `json:"diameter_mm"`
	LengthM    float64 `json:"length_m"`
}

// MeasuredObject - один вычисленный объект. Ровно один из Panel/Post заполнен,
// Kind определяет вариант.
type MeasuredObject struct {
	Page   string        `json:"page"`
	Kind   ObjectKind    `json:"kind"`
	ID     string        `json:"id"`
	AreaM2 float64       `json:"area_m2"`
	Panel  *PanelMeasure `json:"panel,omitempty"`
	Post   *PostMeasure  `json:"post,omitempty"`
}

// ResultSet - объекты активной страницы плюс агрегаты по ним.
type ResultSet struct {
	Objects         []MeasuredObject `json:"objects"`
	PanelAreaTotal  float64          `json:"panel_area_total"`
	PostAreaTotal   float64          `json:"post_area_total"`
	TotalArea       float64          `json:"total_area"`
	PostLengthTotal float64          `json:"post_length_total"`
}

// ============================================================
// Flat records (export boundary)
// ============================================================

// Record - плоская строка таблицы результатов. Поля, не относящиеся к
// варианту объекта, равны null.
type Record struct {
	Page        string     `json:"page"`
	Type        ObjectKind `json:"type"`
	ID          string     `json:"id"`
	WidthMM     *float64   `json:"width_mm"`
	HeightMM    *float64   `json:"height_mm"`
	DoubleSided *bool      `json:"double_sided"`
	DiameterMM  *float64   `json:"diameter_mm"`
	LengthM     *float64   `json:"length_m"`
	AreaM2      float64    `json:"area_m2"`
}

// ============================================================
// Settings & project document
// ============================================================

type Settings struct {
	CoatBothSides         bool    `json:"coat_both_sides"`
	DefaultPostDiameterMM float64 `json:"default_post_diameter_mm"`
}

// ProjectDocument - переносимый снимок проекта: таблица масштабов,
// таблица переопределенных диаметров, последние результаты и настройки.
// Нарисованные фигуры в документ не входят.
type ProjectDocument struct {
	PageScales        map[string]float64 `json:"page_scales"`
	DiameterOverrides map[string]float64 `json:"diameter_overrides"`
	Results           []Record           `json:"results"`
	Settings          Settings           `json:"settings"`
}

// ============================================================
// Drawing
// ============================================================

// DrawingInfo - загруженный чертеж: имя файла и число страниц.
type DrawingInfo struct {
	Filename  string `json:"filename"`
	Kind      string `json:"kind"` // pdf | image
	PageCount int    `json:"page_count"`
}

// ProjectSummary - запись списка сохраненных проектов.
type ProjectSummary struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
