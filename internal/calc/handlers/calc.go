package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"coating-calc/internal/calc/drawing"
	"coating-calc/internal/calc/models"
	"coating-calc/internal/calc/repository"
	"coating-calc/internal/calc/session"
)

// ============================================================
// Calc Handler
// ============================================================

type CalcHandler struct {
	sessions *session.Manager
	storage  *drawing.Storage
	repo     *repository.Repository
}

func NewCalcHandler(sessions *session.Manager, storage *drawing.Storage, repo *repository.Repository) *CalcHandler {
	return &CalcHandler{
		sessions: sessions,
		storage:  storage,
		repo:     repo,
	}
}

type calibrationRequest struct {
	Lines    []models.CalibrationLine `json:"lines"`
	TargetMM float64                  `json:"target_mm"`
}

type overrideRequest struct {
	DiameterMM float64 `json:"diameter_mm"`
}

type sessionResponse struct {
	ID         string              `json:"id"`
	ActivePage int                 `json:"active_page"`
	Settings   models.Settings     `json:"settings"`
	Drawing    *models.DrawingInfo `json:"drawing,omitempty"`
}

// CreateSession создает новую сессию расчета.
func (h *CalcHandler) CreateSession(c fiber.Ctx) error {
	s := h.sessions.Create()
	log.Printf("[CALC] Session created: %s", s.ID)

	return c.Status(http.StatusCreated).JSON(sessionResponse{
		ID:       s.ID,
		Settings: s.Settings(),
	})
}

// GetSession возвращает состояние сессии.
func (h *CalcHandler) GetSession(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	return c.JSON(sessionResponse{
		ID:         s.ID,
		ActivePage: s.ActivePage(),
		Settings:   s.Settings(),
		Drawing:    s.Drawing(),
	})
}

// UploadDrawing принимает чертеж (pdf или растр) и считает его страницы.
// При ошибке состояние сессии не меняется.
func (h *CalcHandler) UploadDrawing(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	info, err := drawing.Inspect(fileHeader.Filename, data)
	if err != nil {
		log.Printf("[CALC] inspect drawing: %v", err)
		return failDrawing(c, err)
	}

	if _, err := h.storage.SaveDrawing(s.ID, fileHeader.Filename, data); err != nil {
		log.Printf("[CALC] save drawing: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
	}

	s.SetDrawing(info)
	log.Printf("[CALC] Drawing uploaded: %s (%s, %d pages)", info.Filename, info.Kind, info.PageCount)

	return c.Status(http.StatusCreated).JSON(info)
}

// SetCalibration применяет калибровочные линии страницы.
func (h *CalcHandler) SetCalibration(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	page, ok := pageParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid page index"})
	}

	var req calibrationRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	pxPerMM, resolved := s.Calibrate(page, req.Lines, req.TargetMM)
	resp := fiber.Map{"page": page, "resolved": resolved}
	if resolved {
		resp["px_per_mm"] = pxPerMM
	}
	return c.JSON(resp)
}

// SetShapes заменяет фигуры страницы и возвращает пересчитанные результаты.
func (h *CalcHandler) SetShapes(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	page, ok := pageParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid page index"})
	}

	var shapes models.PageShapes
	if err := json.Unmarshal(c.Body(), &shapes); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	return c.JSON(s.SetShapes(page, shapes))
}

// GetResults возвращает последний ResultSet активной страницы.
func (h *CalcHandler) GetResults(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	return c.JSON(s.Results())
}

// SetOverride задает диаметр столба (минимум 1 мм) и пересчитывает.
func (h *CalcHandler) SetOverride(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	objectID := c.Params("objectId")
	if objectID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "object id required"})
	}

	var req overrideRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.DiameterMM < 1 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "diameter must be at least 1 mm"})
	}

	return c.JSON(s.SetOverride(objectID, req.DiameterMM))
}

// SetSettings меняет настройки сессии и пересчитывает.
func (h *CalcHandler) SetSettings(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var settings models.Settings
	if err := json.Unmarshal(c.Body(), &settings); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if settings.DefaultPostDiameterMM < 1 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "default diameter must be at least 1 mm"})
	}

	return c.JSON(s.SetSettings(settings))
}

// ============================================================
// Helpers
// ============================================================

func (h *CalcHandler) resolve(c fiber.Ctx) (*session.Session, bool) {
	return h.sessions.Resolve(c.Params("id"))
}

func pageParam(c fiber.Ctx) (int, bool) {
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}

func failDrawing(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrUnsupportedFileType):
		return c.Status(http.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrRenderingUnavailable):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
