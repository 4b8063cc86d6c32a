package service

import (
	"context"

	ir "incident_reporting"
	"incident_reporting/internal/repository"
)

// Authorization covers account lifecycle: registration, credential checks,
// and the reset-token password flow.
type Authorization interface {
	Register(ctx context.Context, username, password, role string) (*ir.SafeUser, error)
	Login(ctx context.Context, username, password string) (*ir.SafeUser, error)
	RequestReset(ctx context.Context, username string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Sessions maps opaque session identifiers to authenticated identities.
// Entries hold the password-stripped projection only.
type Sessions interface {
	Create(user ir.SafeUser) (string, error)
	Resolve(sessionID string) (*ir.SafeUser, bool)
	Destroy(sessionID string)
}

// ResetTokens issues and consumes time-limited single-use password-reset
// tokens.
type ResetTokens interface {
	Issue(userID int) (string, error)
	Validate(token string) (int, bool)
	Redeem(token string) (int, bool)
}

// Users exposes the admin-facing directory.
type Users interface {
	List(ctx context.Context) ([]ir.SafeUser, error)
}

// Reports exposes incident CRUD. Authorization gating happens at the
// handler layer; this service only validates report data itself.
type Reports interface {
	List(ctx context.Context, f repository.ReportFilter) ([]ir.Report, error)
	ListForReporter(ctx context.Context, reporterID int) ([]ir.Report, error)
	Get(ctx context.Context, id int) (*ir.Report, error)
	File(ctx context.Context, r ir.Report) (*ir.Report, error)
	UpdateStatus(ctx context.Context, id int, status string) (*ir.Report, error)
	Delete(ctx context.Context, id int) error
}

// Service aggregates all sub-services behind named fields so handlers take
// a single dependency.
type Service struct {
	Auth        Authorization
	Sessions    Sessions
	ResetTokens ResetTokens
	Users       Users
	Reports     Reports
}

// NewService wires the repository layer into concrete services. The reset
// token store is shared between the ResetTokens field and the auth service
// that redeems through it.
func NewService(repos *repository.Repository) *Service {
	resetTokens := NewResetTokenService()
	return &Service{
		Auth:        NewAuthService(repos.Users, resetTokens),
		Sessions:    NewSessionManager(),
		ResetTokens: resetTokens,
		Users:       NewUserService(repos.Users),
		Reports:     NewReportService(repos.Reports),
	}
}
