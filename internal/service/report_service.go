package service

import (
	"context"

	ir "incident_reporting"
	"incident_reporting/internal/repository"
)

// ReportService is a thin layer over the report store. Input presence is
// checked by request binding; only domain rules live here.
type ReportService struct {
	reports repository.Reports
}

func NewReportService(reports repository.Reports) *ReportService {
	return &ReportService{reports: reports}
}

var _ Reports = (*ReportService)(nil)

func (s *ReportService) List(ctx context.Context, f repository.ReportFilter) ([]ir.Report, error) {
	if f.Status != "" && !ir.ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}
	return s.reports.List(ctx, f)
}

func (s *ReportService) ListForReporter(ctx context.Context, reporterID int) ([]ir.Report, error) {
	return s.reports.ListByReporter(ctx, reporterID)
}

func (s *ReportService) Get(ctx context.Context, id int) (*ir.Report, error) {
	return s.reports.GetByID(ctx, id)
}

// File stores a new report for its reporter. Status always starts pending.
func (s *ReportService) File(ctx context.Context, r ir.Report) (*ir.Report, error) {
	r.Status = ir.StatusPending
	return s.reports.Create(ctx, r)
}

func (s *ReportService) UpdateStatus(ctx context.Context, id int, status string) (*ir.Report, error) {
	if !ir.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.reports.UpdateStatus(ctx, id, status)
}

func (s *ReportService) Delete(ctx context.Context, id int) error {
	return s.reports.Delete(ctx, id)
}
