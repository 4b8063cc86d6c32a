package repository

import (
	"context"
	"database/sql"
	"errors"

	ir "incident_reporting"
)

// ErrDuplicateUsername is returned by Users.Create when the username is
// already taken. The SQLite backend derives it from the unique column
// constraint; the memory backend re-checks under its write lock.
var ErrDuplicateUsername = errors.New("username already exists")

// Users is the identity repository. Both backends implement the same
// contract: absent records are reported as (nil, nil), not as errors.
type Users interface {
	GetByID(ctx context.Context, id int) (*ir.User, error)
	GetByUsername(ctx context.Context, username string) (*ir.User, error)
	ListAll(ctx context.Context) ([]ir.User, error)
	Create(ctx context.Context, username, passwordHash, role string) (*ir.User, error)
	UpdatePassword(ctx context.Context, id int, newHash string) (*ir.User, error)
}

// ReportFilter narrows List results. Zero values mean "no filter".
type ReportFilter struct {
	Status   string
	Category string
}

// Reports stores filed incidents.
type Reports interface {
	List(ctx context.Context, f ReportFilter) ([]ir.Report, error)
	ListByReporter(ctx context.Context, reporterID int) ([]ir.Report, error)
	GetByID(ctx context.Context, id int) (*ir.Report, error)
	Create(ctx context.Context, r ir.Report) (*ir.Report, error)
	UpdateStatus(ctx context.Context, id int, status string) (*ir.Report, error)
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Users   Users
	Reports Reports
}

// NewSQLite wires the durable backend over an open database handle.
func NewSQLite(db *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserSQLite(db),
		Reports: NewReportSQLite(db),
	}
}

// NewMemory wires the transient in-memory backend. It starts empty; the
// caller is expected to run the same seed step it would run against the
// durable backend.
func NewMemory() *Repository {
	return &Repository{
		Users:   NewUserMemory(),
		Reports: NewReportMemory(),
	}
}
