package conversation

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/liamcoop/erpassistant/internal/logger"
)

// ErrSessionNotFound is returned for unknown conversation ids
var ErrSessionNotFound = errors.New("conversation not found")

// Manager holds independent conversations keyed by id
type Manager struct {
	assistant *Assistant
	sessions  map[string]*Session
	mu        sync.RWMutex

	onChange func(active int)
}

// NewManager creates a manager whose sessions share assistant
func NewManager(assistant *Assistant) *Manager {
	return &Manager{
		assistant: assistant,
		sessions:  make(map[string]*Session),
	}
}

// OnChange registers a callback invoked with the session count after every
// create and delete
func (m *Manager) OnChange(fn func(active int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Create starts a new conversation with a random id
func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString(), m.assistant)

	m.mu.Lock()
	m.sessions[s.ID] = s
	n, fn := len(m.sessions), m.onChange
	m.mu.Unlock()

	logger.Debug("conversation created", "conversation_id", s.ID)
	if fn != nil {
		fn(n)
	}
	return s
}

// Get retrieves a conversation
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// List returns the ids of all conversations, sorted
func (m *Manager) List() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// Delete ends a conversation. A turn already running on it completes.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	if _, exists := m.sessions[id]; !exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	n, fn := len(m.sessions), m.onChange
	m.mu.Unlock()

	logger.Debug("conversation deleted", "conversation_id", id)
	if fn != nil {
		fn(n)
	}
	return nil
}

// Len returns the number of conversations
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
