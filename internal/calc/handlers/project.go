package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"coating-calc/internal/calc/models"
	"coating-calc/internal/calc/project"
)

// ============================================================
// Project Handlers
// ============================================================

type saveProjectRequest struct {
	Name string `json:"name"`
}

// ExportProject отдает документ проекта (json).
func (h *CalcHandler) ExportProject(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	return c.JSON(project.Export(s))
}

// ExportCSV отдает плоскую таблицу результатов в csv.
func (h *CalcHandler) ExportCSV(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var buf bytes.Buffer
	if err := project.WriteCSV(&buf, project.Records(s.Results())); err != nil {
		log.Printf("[CALC] csv export: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "csv export failed"})
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="coating_surface_results.csv"`)
	return c.Send(buf.Bytes())
}

// ImportProject заменяет состояние сессии документом из тела запроса.
// Невалидный документ отклоняется целиком, состояние не меняется.
func (h *CalcHandler) ImportProject(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	doc, err := project.Parse(c.Body())
	if err != nil {
		log.Printf("[CALC] import: %v", err)
		if errors.Is(err, models.ErrMalformedDocument) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "import failed"})
	}

	project.Import(s, doc)
	return c.JSON(s.Results())
}

// SaveProject сохраняет снимок проекта сессии в базе под именем.
func (h *CalcHandler) SaveProject(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var req saveProjectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "project name required"})
	}

	data, err := json.Marshal(project.Export(s))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode project"})
	}

	if err := h.repo.Save(context.Background(), req.Name, data); err != nil {
		log.Printf("[CALC] save project: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save project"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"name": req.Name})
}

// ListProjects возвращает список сохраненных проектов.
func (h *CalcHandler) ListProjects(c fiber.Ctx) error {
	list, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[CALC] list projects: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list projects"})
	}
	if list == nil {
		list = []models.ProjectSummary{}
	}
	return c.JSON(list)
}

// GetProject отдает сохраненный документ проекта.
func (h *CalcHandler) GetProject(c fiber.Ctx) error {
	data, err := h.repo.Get(context.Background(), c.Params("name"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(data)
}

// RestoreProject импортирует сохраненный документ в сессию.
func (h *CalcHandler) RestoreProject(c fiber.Ctx) error {
	s, ok := h.resolve(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	data, err := h.repo.Get(context.Background(), c.Params("name"))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
	}

	doc, err := project.Parse(data)
	if err != nil {
		log.Printf("[CALC] restore: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	project.Import(s, doc)
	return c.JSON(s.Results())
}
