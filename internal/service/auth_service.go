package service

import (
	"context"
	"fmt"

	ir "incident_reporting"
	"incident_reporting/internal/repository"
)

// AuthService handles account creation, credential checks, and the
// reset-token password flow.
type AuthService struct {
	users       repository.Users
	resetTokens ResetTokens
}

func NewAuthService(users repository.Users, resetTokens ResetTokens) *AuthService {
	return &AuthService{users: users, resetTokens: resetTokens}
}

var _ Authorization = (*AuthService)(nil)

// Register validates input, hashes the password, and creates the account.
// An empty role defaults to reporter. Duplicate usernames surface as
// repository.ErrDuplicateUsername.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*ir.SafeUser, error) {
	if username == "" {
		return nil, ErrInvalidInput
	}
	if role == "" {
		role = ir.RoleReporter
	}
	if !ir.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, username, hash, role)
	if err != nil {
		return nil, err
	}
	safe := u.Safe()
	return &safe, nil
}

// Login checks credentials. Unknown username and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ir.SafeUser, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up user %q: %w", username, err)
	}
	if u == nil || !VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	safe := u.Safe()
	return &safe, nil
}

// RequestReset issues a reset token for the named user. The token is
// returned to the caller directly; delivery is the caller's problem.
func (s *AuthService) RequestReset(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", ErrInvalidInput
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("look up user %q: %w", username, err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return s.resetTokens.Issue(u.ID)
}

// ResetPassword redeems the token and replaces the credential. The token
// is consumed even when the bound user no longer exists, so a retry after
// that failure sees ErrInvalidResetToken, not ErrUserNotFound.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidInput
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	userID, ok := s.resetTokens.Redeem(token)
	if !ok {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	u, err := s.users.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("update password for user id %d: %w", userID, err)
	}
	if u == nil {
		return ErrUserNotFound
	}
	return nil
}
