package incident_reporting

import "time"

// User roles. New accounts default to RoleReporter.
const (
	RoleReporter = "reporter"
	RoleAdmin    = "admin"
)

// Report statuses. New reports default to StatusPending.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusClosed   = "closed"
)

// ValidRole reports whether s is a known user role.
func ValidRole(s string) bool {
	return s == RoleReporter || s == RoleAdmin
}

// ValidStatus reports whether s is a known report status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReviewed || s == StatusClosed
}

// User is the stored account record.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	Role         string    `json:"role"` // reporter | admin
	CreatedAt    time.Time `json:"created_at"`
}

// Safe returns the projection of u that is allowed to leave the server:
// everything except the password hash.
func (u User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// SafeUser is a User with the credential stripped. Sessions store this
// projection; API responses carry it.
type SafeUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the identity carries the admin role.
func (u SafeUser) IsAdmin() bool { return u.Role == RoleAdmin }

// Report is a single filed incident. The service treats it as an opaque
// record; only status transitions and ownership matter here.
type Report struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Status      string    `json:"status"` // pending | reviewed | closed
	ReporterID  int       `json:"reporter_id"`
	CreatedAt   time.Time `json:"created_at"`
}
