package service

import (
	"fmt"
	"sync"
	"time"
)

const resetTokenTTL = time.Hour

type resetEntry struct {
	userID    int
	expiresAt time.Time
}

// ResetTokenService keeps outstanding reset tokens in memory only, even
// when user data is durable. A restart drops all pending resets; users
// simply request a new token.
type ResetTokenService struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
	now    func() time.Time // injectable for TTL tests
}

func NewResetTokenService() *ResetTokenService {
	return &ResetTokenService{
		tokens: make(map[string]resetEntry),
		now:    time.Now,
	}
}

var _ ResetTokens = (*ResetTokenService)(nil)

// Issue creates a token bound to userID, valid for one hour.
func (s *ResetTokenService) Issue(userID int) (string, error) {
	token, err := newOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	s.mu.Lock()
	s.tokens[token] = resetEntry{userID: userID, expiresAt: s.now().Add(resetTokenTTL)}
	s.mu.Unlock()
	return token, nil
}

// Validate reports the userID bound to a live token. Expired entries are
// deleted on sight. Validation alone does not consume a live token.
func (s *ResetTokenService) Validate(token string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok {
		return 0, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.tokens, token)
		return 0, false
	}
	return e.userID, true
}

// Redeem validates and unconditionally deletes the entry, so a token is
// good for exactly one password change even under retried requests.
func (s *ResetTokenService) Redeem(token string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if ok {
		delete(s.tokens, token)
	}
	if !ok || s.now().After(e.expiresAt) {
		return 0, false
	}
	return e.userID, true
}
