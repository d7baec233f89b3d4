package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"coating-calc/internal/calc/drawing"
	"coating-calc/internal/calc/handlers"
	"coating-calc/internal/calc/models"
	"coating-calc/internal/calc/repository"
	"coating-calc/internal/calc/session"
	"coating-calc/internal/common/config"
	"coating-calc/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Coating Calc Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_projects.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	sessionManager := session.NewManager(models.Settings{
		CoatBothSides:         cfg.CoatBothSides,
		DefaultPostDiameterMM: cfg.DefaultPostDiameterMM,
	})
	storage := drawing.NewStorage(cfg.DrawingsDir)
	calcHandler := handlers.NewCalcHandler(sessionManager, storage, repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Coating Calc Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)

	// ============================================================
	// Docs Routes
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// Session Routes
	// ============================================================

	app.Post("/sessions", calcHandler.CreateSession)
	app.Get("/sessions/:id", calcHandler.GetSession)
	app.Post("/sessions/:id/drawing", calcHandler.UploadDrawing)
	app.Put("/sessions/:id/pages/:page/calibration", calcHandler.SetCalibration)
	app.Put("/sessions/:id/pages/:page/shapes", calcHandler.SetShapes)
	app.Get("/sessions/:id/results", calcHandler.GetResults)
	app.Put("/sessions/:id/overrides/:objectId", calcHandler.SetOverride)
	app.Put("/sessions/:id/settings", calcHandler.SetSettings)

	// ============================================================
	// Project Routes
	// ============================================================

	app.Get("/sessions/:id/export", calcHandler.ExportProject)
	app.Get("/sessions/:id/export.csv", calcHandler.ExportCSV)
	app.Post("/sessions/:id/import", calcHandler.ImportProject)
	app.Post("/sessions/:id/projects", calcHandler.SaveProject)
	app.Post("/sessions/:id/projects/:name/restore", calcHandler.RestoreProject)
	app.Get("/projects", calcHandler.ListProjects)
	app.Get("/projects/:name", calcHandler.GetProject)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Coating Calc Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
