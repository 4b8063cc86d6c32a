package service

import (
	"context"
	"fmt"

	ir "incident_reporting"
	"incident_reporting/internal/repository"
)

// UserService exposes the admin directory as safe projections.
type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

var _ Users = (*UserService)(nil)

// List returns every account, ascending by id, hashes stripped.
func (s *UserService) List(ctx context.Context) ([]ir.SafeUser, error) {
	all, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]ir.SafeUser, 0, len(all))
	for _, u := range all {
		out = append(out, u.Safe())
	}
	return out, nil
}
