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

// ReportSQLite is the durable report store.
type ReportSQLite struct {
	db *sql.DB
}

func NewReportSQLite(db *sql.DB) *ReportSQLite {
	return &ReportSQLite{db: db}
}

var _ Reports = (*ReportSQLite)(nil)

const (
	insertReportSQL = `INSERT INTO reports (title, description, category, location, status, reporter_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectReportSQL         = `SELECT id, title, description, category, location, status, reporter_id, created_at FROM reports`
	selectReportByIDSQL     = selectReportSQL + ` WHERE id = ?`
	updateReportStatusSQL   = `UPDATE reports SET status = ? WHERE id = ?`
	deleteReportSQL         = `DELETE FROM reports WHERE id = ?`
	reportNewestFirstSuffix = ` ORDER BY created_at DESC, id DESC`
)

// List returns reports newest first, optionally filtered by status and
// category.
func (r *ReportSQLite) List(ctx context.Context, f ReportFilter) ([]ir.Report, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}

	q := selectReportSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += reportNewestFirstSuffix

	return r.queryMany(ctx, q, args...)
}

// ListByReporter returns the reports filed by one reporter, newest first.
func (r *ReportSQLite) ListByReporter(ctx context.Context, reporterID int) ([]ir.Report, error) {
	q := selectReportSQL + ` WHERE reporter_id = ?` + reportNewestFirstSuffix
	return r.queryMany(ctx, q, reporterID)
}

// GetByID fetches one report. Returns (nil, nil) if not found.
func (r *ReportSQLite) GetByID(ctx context.Context, id int) (*ir.Report, error) {
	var rep ir.Report
	err := r.db.QueryRowContext(ctx, selectReportByIDSQL, id).Scan(
		&rep.ID, &rep.Title, &rep.Description, &rep.Category,
		&rep.Location, &rep.Status, &rep.ReporterID, &rep.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select report id %d: %w", id, err)
	}
	return &rep, nil
}

// Create inserts a new report. Status defaults to pending when unset.
func (r *ReportSQLite) Create(ctx context.Context, rep ir.Report) (*ir.Report, error) {
	if rep.Status == "" {
		rep.Status = ir.StatusPending
	}
	rep.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, insertReportSQL,
		rep.Title, rep.Description, rep.Category, rep.Location,
		rep.Status, rep.ReporterID, rep.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert report %q: %w", rep.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for report %q: %w", rep.Title, err)
	}
	rep.ID = int(lastID)
	return &rep, nil
}

// UpdateStatus sets a new status. Returns (nil, nil) when the id is unknown.
func (r *ReportSQLite) UpdateStatus(ctx context.Context, id int, status string) (*ir.Report, error) {
	res, err := r.db.ExecContext(ctx, updateReportStatusSQL, status, id)
	if err != nil {
		return nil, fmt.Errorf("update status for report id %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for report id %d: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *ReportSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteReportSQL, id); err != nil {
		return fmt.Errorf("delete report id %d: %w", id, err)
	}
	return nil
}

func (r *ReportSQLite) queryMany(ctx context.Context, q string, args ...any) ([]ir.Report, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}
	defer rows.Close()

	out := make([]ir.Report, 0, 32)
	for rows.Next() {
		var rep ir.Report
		if err := rows.Scan(
			&rep.ID, &rep.Title, &rep.Description, &rep.Category,
			&rep.Location, &rep.Status, &rep.ReporterID, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return out, nil
}
