package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	ir "incident_reporting"
)

// ReportMemory is the transient report store used in fallback mode.
type ReportMemory struct {
	mu      sync.RWMutex
	reports []ir.Report
	nextID  int
}

func NewReportMemory() *ReportMemory {
	return &ReportMemory{nextID: 1}
}

var _ Reports = (*ReportMemory)(nil)

func (r *ReportMemory) List(_ context.Context, f ReportFilter) ([]ir.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filterLocked(func(rep ir.Report) bool {
		if f.Status != "" && rep.Status != f.Status {
			return false
		}
		if f.Category != "" && rep.Category != f.Category {
			return false
		}
		return true
	}), nil
}

func (r *ReportMemory) ListByReporter(_ context.Context, reporterID int) ([]ir.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filterLocked(func(rep ir.Report) bool { return rep.ReporterID == reporterID }), nil
}

func (r *ReportMemory) GetByID(_ context.Context, id int) (*ir.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.reports {
		if r.reports[i].ID == id {
			rep := r.reports[i]
			return &rep, nil
		}
	}
	return nil, nil
}

func (r *ReportMemory) Create(_ context.Context, rep ir.Report) (*ir.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rep.Status == "" {
		rep.Status = ir.StatusPending
	}
	rep.ID = r.nextID
	rep.CreatedAt = time.Now().UTC()
	r.nextID++
	r.reports = append(r.reports, rep)
	return &rep, nil
}

func (r *ReportMemory) UpdateStatus(_ context.Context, id int, status string) (*ir.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Status = status
			rep := r.reports[i]
			return &rep, nil
		}
	}
	return nil, nil
}

func (r *ReportMemory) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports = append(r.reports[:i], r.reports[i+1:]...)
			return nil
		}
	}
	return nil
}

// filterLocked returns matching reports newest first, mirroring the SQL
// backend's ordering. Callers must hold at least the read lock.
func (r *ReportMemory) filterLocked(match func(ir.Report) bool) []ir.Report {
	out := make([]ir.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		if match(rep) {
			out = append(out, rep)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
