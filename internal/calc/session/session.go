package session

import (
	"fmt"
	"sync"
	"time"

	"coating-calc/internal/calc/engine"
	"coating-calc/internal/calc/models"
	"coating-calc/internal/calc/scale"
)

// ============================================================
// Session
// ============================================================

// Session - контекст одной рабочей сессии: таблица масштабов, таблица
// диаметров, фигуры по страницам и последний результат. Все мутации
// проходят под одним мьютексом, у состояния сессии ровно один владелец
// вычислений в каждый момент.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	drawing    *models.DrawingInfo
	scales     *scale.Table
	overrides  *Overrides
	shapes     map[int]models.PageShapes
	settings   models.Settings
	activePage int
	results    models.ResultSet
}

func newSession(id string, settings models.Settings) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		scales:    scale.NewTable(),
		overrides: NewOverrides(),
		shapes:    make(map[int]models.PageShapes),
		settings:  settings,
		results:   models.ResultSet{Objects: []models.MeasuredObject{}},
	}
}

// PageLabel строит метку страницы для id объектов: страницы нумеруются с 1.
func PageLabel(page int) string {
	return fmt.Sprintf("p%d", page+1)
}

// SetDrawing привязывает загруженный чертеж к сессии.
func (s *Session) SetDrawing(info *models.DrawingInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = info
}

func (s *Session) Drawing() *models.DrawingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// Calibrate прогоняет Scale Resolver для страницы и пересчитывает ее.
// Возвращает действующий масштаб (ok=false, если он так и не определен).
func (s *Session) Calibrate(page int, lines []models.CalibrationLine, targetMM float64) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.scales.Resolve(page, lines, targetMM)
	s.activePage = page
	s.recompute()
	return v, ok
}

// SetShapes заменяет фигуры страницы, делает ее активной и пересчитывает.
func (s *Session) SetShapes(page int, shapes models.PageShapes) models.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shapes[page] = shapes
	s.activePage = page
	return s.recompute()
}

// SetOverride записывает диаметр столба и пересчитывает активную страницу.
func (s *Session) SetOverride(id string, diameterMM float64) models.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides.Set(id, diameterMM)
	return s.recompute()
}

// SetSettings меняет настройки расчета и пересчитывает активную страницу.
func (s *Session) SetSettings(settings models.Settings) models.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	return s.recompute()
}

func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Session) ActivePage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePage
}

// Results возвращает последний вычисленный ResultSet.
func (s *Session) Results() models.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Snapshot отдает копии трех таблиц состояния для сериализации.
func (s *Session) Snapshot() (scales map[int]float64, overrides map[string]float64, results models.ResultSet, settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scales.Snapshot(), s.overrides.Snapshot(), s.results, s.settings
}

// Restore заменяет состояние сессии целиком (импорт проекта). Фигуры из
// документа не восстанавливаются: живая геометрия появляется только после
// перерисовки, поэтому сохраненные фигуры сбрасываются.
func (s *Session) Restore(scales map[int]float64, overrides map[string]float64, results models.ResultSet, settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scales.Replace(scales)
	s.overrides.Replace(overrides)
	s.shapes = make(map[int]models.PageShapes)
	s.settings = settings
	s.results = results
}

// recompute собирает вход движка по активной странице. Вызывается под mu.
func (s *Session) recompute() models.ResultSet {
	pxPerMM, scaled := s.scales.Get(s.activePage)
	shapes := s.shapes[s.activePage]

	s.results = engine.Recompute(engine.Input{
		PageLabel: PageLabel(s.activePage),
		PxPerMM:   pxPerMM,
		Scaled:    scaled,
		Panels:    shapes.Panels,
		Posts:     shapes.Posts,
		Overrides: s.overrides.Snapshot(),
		Settings:  s.settings,
	})
	return s.results
}
