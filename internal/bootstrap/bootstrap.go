// Package bootstrap holds the startup-only pieces of backend selection:
// the idempotent seed step and the classification that decides whether a
// startup failure should trigger the in-memory fallback.
package bootstrap

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	ir "incident_reporting"
	"incident_reporting/internal/repository"
	"incident_reporting/internal/service"
)

// Default accounts created at startup. Matching the documented local
// setup; operators are expected to change these.
const (
	SeedAdminUsername    = "admin"
	seedAdminPassword    = "admin123"
	SeedReporterUsername = "reporter"
	seedReporterPassword = "reporter123"
)

// Seed ensures the default admin and reporter accounts exist, plus two
// illustrative reports filed by the reporter. It runs the same call
// sequence against either backend and is safe to re-run: existing
// accounts are left alone, and the reports are only filed when the
// reporter account is first created.
func Seed(ctx context.Context, repos *repository.Repository) error {
	if err := ensureUser(ctx, repos.Users, SeedAdminUsername, seedAdminPassword, ir.RoleAdmin, nil); err != nil {
		return err
	}

	fileExamples := func(reporterID int) error {
		examples := []ir.Report{
			{
				Title:       "Vandalism in Park",
				Description: "Graffiti on the bench near the north entrance.",
				Category:    "Vandalism",
				Location:    "North Entrance",
				ReporterID:  reporterID,
			},
			{
				Title:       "Suspicious Activity",
				Description: "Two individuals loitering around the back alley at 2 AM.",
				Category:    "Suspicious Behavior",
				Location:    "Back Alley",
				ReporterID:  reporterID,
			},
		}
		for _, r := range examples {
			if _, err := repos.Reports.Create(ctx, r); err != nil {
				return fmt.Errorf("seed report %q: %w", r.Title, err)
			}
		}
		return nil
	}

	return ensureUser(ctx, repos.Users, SeedReporterUsername, seedReporterPassword, ir.RoleReporter, fileExamples)
}

// ensureUser creates the account if missing and, on first creation only,
// runs the onCreate hook with the new user's id.
func ensureUser(ctx context.Context, users repository.Users, username, password, role string, onCreate func(id int) error) error {
	existing, err := users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("seed probe for %q: %w", username, err)
	}
	if existing != nil {
		return nil
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password for %q: %w", username, err)
	}
	u, err := users.Create(ctx, username, hash, role)
	if err != nil {
		return fmt.Errorf("seed user %q: %w", username, err)
	}
	if onCreate != nil {
		return onCreate(u.ID)
	}
	return nil
}

// Markers the sqlite driver only exposes as message text.
var connectivityMarkers = []string{
	"unable to open database file",
	"database is locked",
	"disk I/O error",
	"ping sqlite",
	"connection refused",
	"no such host",
	"i/o timeout",
}

// IsConnectivityError reports whether err means the durable backend is
// unreachable, as opposed to a data-level failure such as a constraint
// violation. Only connectivity-class errors trigger the fallback restart;
// everything else must surface as an ordinary startup failure.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	msg := err.Error()
	for _, marker := range connectivityMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
