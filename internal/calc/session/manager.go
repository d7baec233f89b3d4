package session

import (
	"sync"

	"github.com/google/uuid"

	"coating-calc/internal/calc/models"
)

// ============================================================
// Session Manager
// ============================================================

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session // id -> session
	defaults models.Settings
}

func NewManager(defaults models.Settings) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// Create создает сессию с настройками по умолчанию и выдает ее id.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := newSession(uuid.NewString(), m.defaults)
	m.sessions[s.ID] = s
	return s
}

// Resolve находит сессию по id.
func (m *Manager) Resolve(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}
