package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	ir "incident_reporting"
)

// UserSQLite is the durable identity repository. Username uniqueness is
// enforced by the column constraint, which is authoritative.
type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)`
	selectUserByIDSQL       = `SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`
	selectAllUsersSQL       = `SELECT id, username, password_hash, role, created_at FROM users ORDER BY id ASC`
	updateUserPasswordSQL   = `UPDATE users SET password_hash = ? WHERE id = ?`
)

// Create inserts a new user. A violated username constraint maps to
// ErrDuplicateUsername.
func (r *UserSQLite) Create(ctx context.Context, username, passwordHash, role string) (*ir.User, error) {
	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash, role, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return &ir.User{
		ID:           int(lastID),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    createdAt,
	}, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByID(ctx context.Context, id int) (*ir.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user id %d: %w", id, err)
	}
	return u, nil
}

// GetByUsername fetches a user by exact username. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*ir.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// ListAll returns every user ordered by ascending id.
func (r *UserSQLite) ListAll(ctx context.Context) ([]ir.User, error) {
	rows, err := r.db.QueryContext(ctx, selectAllUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := make([]ir.User, 0, 16)
	for rows.Next() {
		var u ir.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return out, nil
}

// UpdatePassword replaces the stored hash. Returns (nil, nil) when the id is
// unknown; an unknown id is not an error.
func (r *UserSQLite) UpdatePassword(ctx context.Context, id int, newHash string) (*ir.User, error) {
	res, err := r.db.ExecContext(ctx, updateUserPasswordSQL, newHash, id)
	if err != nil {
		return nil, fmt.Errorf("update password for user id %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for user id %d: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *UserSQLite) scanOne(row *sql.Row) (*ir.User, error) {
	var u ir.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation detects the SQLite unique-constraint error on the
// username column. The modernc driver surfaces it only as message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.username")
}
