package preview

import "sync"

// Manager keeps one editing session per project. Sessions are in-memory and
// ephemeral: a server restart simply drops selection state, which the client
// recovers from by reselecting.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for a project, creating it on first use.
func (m *Manager) Get(projectID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[projectID]
	if !ok {
		s = NewSession()
		m.sessions[projectID] = s
	}
	return s
}

// Drop removes a project's session, if any.
func (m *Manager) Drop(projectID string) {
	m.mu.Lock()
	delete(m.sessions, projectID)
	m.mu.Unlock()
}
