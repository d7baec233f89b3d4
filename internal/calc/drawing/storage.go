package drawing

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Drawing Storage
// ============================================================

// Storage хранит загруженные чертежи на диске, по каталогу на сессию.
type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

func (s *Storage) SessionDir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

func (s *Storage) DrawingPath(sessionID, filename string) string {
	return filepath.Join(s.SessionDir(sessionID), filepath.Base(filename))
}

func (s *Storage) EnsureDir(sessionID string) error {
	if err := os.MkdirAll(s.SessionDir(sessionID), 0o755); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	return nil
}

// SaveDrawing кладет файл чертежа в каталог сессии.
func (s *Storage) SaveDrawing(sessionID, filename string, data []byte) (string, error) {
	if err := s.EnsureDir(sessionID); err != nil {
		return "", err
	}
	path := s.DrawingPath(sessionID, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write drawing: %w", err)
	}
	return path, nil
}
