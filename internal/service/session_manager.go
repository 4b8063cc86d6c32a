package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	ir "incident_reporting"
)

// 32 random bytes = 64 hex chars; unguessable by construction.
const sessionTokenBytes = 32

// SessionManager owns the server-side session table. It is constructed at
// process start and injected into handlers; sessions do not survive a
// restart. Entries live until explicit Destroy; there is no server-side
// TTL sweep, only the cookie max-age limits a session's useful life.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]ir.SafeUser
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]ir.SafeUser)}
}

var _ Sessions = (*SessionManager)(nil)

// Create registers a new session for user and returns its opaque id.
func (m *SessionManager) Create(user ir.SafeUser) (string, error) {
	id, err := newOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	m.mu.Lock()
	m.sessions[id] = user
	m.mu.Unlock()
	return id, nil
}

// Resolve returns the identity bound to sessionID, if any.
func (m *SessionManager) Resolve(sessionID string) (*ir.SafeUser, bool) {
	if sessionID == "" {
		return nil, false
	}
	m.mu.RLock()
	user, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &user, true
}

// Destroy removes the session. Destroying an unknown id is a no-op.
func (m *SessionManager) Destroy(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// newOpaqueToken returns a hex-encoded token from crypto/rand. Used for
// both session ids and reset tokens.
func newOpaqueToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
