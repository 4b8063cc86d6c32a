package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	ir "incident_reporting"
)

func newMockReportRepo(t *testing.T) (*ReportSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewReportSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func reportColumns() []string {
	return []string{"id", "title", "description", "category", "location", "status", "reporter_id", "created_at"}
}

func TestReportSQLite_ListWithFilter(t *testing.T) {
	repo, mock, cleanup := newMockReportRepo(t)
	defer cleanup()

	wantSQL := selectReportSQL + " WHERE status = ? AND category = ?" + reportNewestFirstSuffix
	mock.ExpectQuery(regexp.QuoteMeta(wantSQL)).
		WithArgs("pending", "Vandalism").
		WillReturnRows(sqlmock.NewRows(reportColumns()).
			AddRow(3, "t3", "d", "Vandalism", "park", "pending", 2, time.Now().UTC()).
			AddRow(1, "t1", "d", "Vandalism", "lot", "pending", 2, time.Now().UTC()))

	reports, err := repo.List(context.Background(), ReportFilter{Status: "pending", Category: "Vandalism"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reports) != 2 || reports[0].ID != 3 {
		t.Fatalf("unexpected reports: %+v", reports)
	}
}

func TestReportSQLite_Create(t *testing.T) {
	repo, mock, cleanup := newMockReportRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertReportSQL)).
		WithArgs("t", "d", "c", "l", "pending", 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	r, err := repo.Create(context.Background(), ir.Report{
		Title: "t", Description: "d", Category: "c", Location: "l", ReporterID: 7,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if r.ID != 11 || r.Status != ir.StatusPending {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestReportSQLite_UpdateStatusUnknownID(t *testing.T) {
	repo, mock, cleanup := newMockReportRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(updateReportStatusSQL)).
		WithArgs("reviewed", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r, err := repo.UpdateStatus(context.Background(), 99, "reviewed")
	if err != nil || r != nil {
		t.Fatalf("expected (nil, nil) for unknown id, got (%+v, %v)", r, err)
	}
}
