package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"coating-calc/internal/calc/models"
)

// ============================================================
// SQLite Repository
// ============================================================

// Repository хранит сохраненные документы проектов.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Save сохраняет документ проекта под именем, перезаписывая прежний снимок.
func (r *Repository) Save(ctx context.Context, name string, document []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO projects (name, document, created_at, updated_at)
        VALUES (?, ?, datetime('now'), datetime('now'))
        ON CONFLICT(name) DO UPDATE SET
            document = excluded.document,
            updated_at = datetime('now')
    `, name, string(document))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Get возвращает сохраненный документ проекта.
func (r *Repository) Get(ctx context.Context, name string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT document
        FROM projects
        WHERE name = ?
    `, name)

	var document string
	if err := row.Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return []byte(document), nil
}

// List возвращает список сохраненных проектов.
func (r *Repository) List(ctx context.Context) ([]models.ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT name, created_at, updated_at
        FROM projects
        ORDER BY updated_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ProjectSummary
	for rows.Next() {
		var p models.ProjectSummary
		if err := rows.Scan(&p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
