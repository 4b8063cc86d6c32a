package handlers

import (
	"net/http"
	"strconv"

	ir "incident_reporting"
	"incident_reporting/internal/repository"

	"github.com/gin-gonic/gin"
)

type createReportRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func reportIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return 0, false
	}
	return id, true
}

// listReports shows admins everything, optionally filtered; reporters see
// only their own submissions.
func (h *Handler) listReports(c *gin.Context) {
	user, _ := currentUser(c)

	var (
		reports []ir.Report
		err     error
	)
	if user.IsAdmin() {
		reports, err = h.services.Reports.List(c.Request.Context(), repository.ReportFilter{
			Status:   c.Query("status"),
			Category: c.Query("category"),
		})
	} else {
		reports, err = h.services.Reports.ListForReporter(c.Request.Context(), user.ID)
	}
	if err != nil {
		h.respondError(c, "list_reports_failed", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// getReport is gated per resource: the filing reporter or an admin.
func (h *Handler) getReport(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	report, err := h.services.Reports.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "get_report_failed", err)
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	user, _ := currentUser(c)
	if !ownerOrAdmin(user, report.ReporterID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// createReport files a new incident for the authenticated reporter.
// Admins review reports, they don't file them.
func (h *Handler) createReport(c *gin.Context) {
	user, _ := currentUser(c)
	if user.Role != ir.RoleReporter {
		c.JSON(http.StatusForbidden, gin.H{"error": "only reporters can submit reports"})
		return
	}

	var input createReportRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	report, err := h.services.Reports.File(c.Request.Context(), ir.Report{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		ReporterID:  user.ID,
	})
	if err != nil {
		h.respondError(c, "create_report_failed", err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *Handler) updateReportStatus(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	var input updateStatusRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	report, err := h.services.Reports.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		h.respondError(c, "update_report_status_failed", err)
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) deleteReport(c *gin.Context) {
	id, ok := reportIDParam(c)
	if !ok {
		return
	}

	report, err := h.services.Reports.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "delete_report_failed", err)
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	if err := h.services.Reports.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "delete_report_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
