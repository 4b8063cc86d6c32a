package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"testing"

	ir "incident_reporting"
	"incident_reporting/internal/service"

	"github.com/gin-gonic/gin"
)

// fileReport creates a report through the API and returns its id.
func fileReport(t *testing.T, r *gin.Engine, session, title string) int {
	t.Helper()
	body := `{"title":"` + title + `","description":"d","category":"Vandalism","location":"park"}`
	w := performJSON(t, r, http.MethodPost, "/api/reports", body, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("file report %q: status=%d body=%s", title, w.Code, w.Body.String())
	}
	id, ok := decodeBody(t, w)["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("no id in response: %s", w.Body.String())
	}
	return int(id)
}

func TestCreateReport_Gating(t *testing.T) {
	r := newMemoryRouter(t)
	reporterSession := register(t, r, "alice", "secret1", "")
	adminSession := register(t, r, "boss", "secret1", ir.RoleAdmin)

	body := `{"title":"t","description":"d","category":"c","location":"l"}`

	w := performJSON(t, r, http.MethodPost, "/api/reports", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status=%d", w.Code)
	}

	// admins review, they don't file
	w = performJSON(t, r, http.MethodPost, "/api/reports", body, adminSession)
	if w.Code != http.StatusForbidden {
		t.Fatalf("admin: status=%d", w.Code)
	}

	w = performJSON(t, r, http.MethodPost, "/api/reports", body, reporterSession)
	if w.Code != http.StatusCreated {
		t.Fatalf("reporter: status=%d body=%s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["status"] != ir.StatusPending {
		t.Fatalf("expected pending status, got %v", created["status"])
	}

	// missing fields
	w = performJSON(t, r, http.MethodPost, "/api/reports", `{"title":"t"}`, reporterSession)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("incomplete body: status=%d", w.Code)
	}
}

func TestListReports_ScopedByRole(t *testing.T) {
	r := newMemoryRouter(t)
	aliceSession := register(t, r, "alice", "secret1", "")
	bobSession := register(t, r, "bob", "secret1", "")
	adminSession := register(t, r, "boss", "secret1", ir.RoleAdmin)

	fileReport(t, r, aliceSession, "a1")
	fileReport(t, r, aliceSession, "a2")
	fileReport(t, r, bobSession, "b1")

	// reporters see only their own
	w := performJSON(t, r, http.MethodGet, "/api/reports", "", aliceSession)
	if w.Code != http.StatusOK {
		t.Fatalf("alice list: status=%d", w.Code)
	}
	if got := decodeList(t, w); len(got) != 2 {
		t.Fatalf("alice sees %d reports, want 2", len(got))
	}

	// admins see everything
	w = performJSON(t, r, http.MethodGet, "/api/reports", "", adminSession)
	if got := decodeList(t, w); len(got) != 3 {
		t.Fatalf("admin sees %d reports, want 3", len(got))
	}

	// admin filters
	w = performJSON(t, r, http.MethodGet, "/api/reports?status=pending&category=Vandalism", "", adminSession)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered list: status=%d body=%s", w.Code, w.Body.String())
	}
	if got := decodeList(t, w); len(got) != 3 {
		t.Fatalf("filtered list: %d reports, want 3", len(got))
	}

	// bad status filter
	w = performJSON(t, r, http.MethodGet, "/api/reports?status=open", "", adminSession)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: status=%d", w.Code)
	}
}

func TestGetReport_OwnerOrAdmin(t *testing.T) {
	r := newMemoryRouter(t)
	aliceSession := register(t, r, "alice", "secret1", "")
	bobSession := register(t, r, "bob", "secret1", "")
	adminSession := register(t, r, "boss", "secret1", ir.RoleAdmin)

	id := fileReport(t, r, aliceSession, "a1")
	path := "/api/reports/" + strconv.Itoa(id)

	// the owner
	w := performJSON(t, r, http.MethodGet, path, "", aliceSession)
	if w.Code != http.StatusOK {
		t.Fatalf("owner: status=%d", w.Code)
	}

	// a different reporter
	w = performJSON(t, r, http.MethodGet, path, "", bobSession)
	if w.Code != http.StatusForbidden {
		t.Fatalf("other reporter: status=%d", w.Code)
	}

	// an admin
	w = performJSON(t, r, http.MethodGet, path, "", adminSession)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status=%d", w.Code)
	}

	// unknown id
	w = performJSON(t, r, http.MethodGet, "/api/reports/999", "", adminSession)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status=%d", w.Code)
	}

	// malformed id
	w = performJSON(t, r, http.MethodGet, "/api/reports/abc", "", adminSession)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: status=%d", w.Code)
	}
}

func TestUpdateReportStatus(t *testing.T) {
	r := newMemoryRouter(t)
	aliceSession := register(t, r, "alice", "secret1", "")
	adminSession := register(t, r, "boss", "secret1", ir.RoleAdmin)

	id := fileReport(t, r, aliceSession, "a1")
	path := "/api/reports/" + strconv.Itoa(id) + "/status"

	// reporters cannot change status, not even on their own report
	w := performJSON(t, r, http.MethodPatch, path, `{"status":"reviewed"}`, aliceSession)
	if w.Code != http.StatusForbidden {
		t.Fatalf("reporter: status=%d", w.Code)
	}

	w = performJSON(t, r, http.MethodPatch, path, `{"status":"reviewed"}`, adminSession)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: status=%d body=%s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["status"] != ir.StatusReviewed {
		t.Fatalf("unexpected status: %v", body["status"])
	}

	// invalid status value
	w = performJSON(t, r, http.MethodPatch, path, `{"status":"open"}`, adminSession)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad status: status=%d", w.Code)
	}

	// unknown id
	w = performJSON(t, r, http.MethodPatch, "/api/reports/999/status", `{"status":"closed"}`, adminSession)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: status=%d", w.Code)
	}
}

func TestDeleteReport(t *testing.T) {
	r := newMemoryRouter(t)
	aliceSession := register(t, r, "alice", "secret1", "")
	adminSession := register(t, r, "boss", "secret1", ir.RoleAdmin)

	id := fileReport(t, r, aliceSession, "a1")
	path := "/api/reports/" + strconv.Itoa(id)

	w := performJSON(t, r, http.MethodDelete, path, "", aliceSession)
	if w.Code != http.StatusForbidden {
		t.Fatalf("reporter: status=%d", w.Code)
	}

	w = performJSON(t, r, http.MethodDelete, path, "", adminSession)
	if w.Code != http.StatusOK {
		t.Fatalf("admin delete: status=%d", w.Code)
	}

	// already gone
	w = performJSON(t, r, http.MethodDelete, path, "", adminSession)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status=%d", w.Code)
	}
}

func TestListReports_RepositoryFailureIs500(t *testing.T) {
	reporter := ir.SafeUser{ID: 1, Username: "alice", Role: ir.RoleReporter}
	s := &service.Service{
		Sessions: &mockSessions{resolved: map[string]ir.SafeUser{"sid": reporter}},
		Reports:  &mockReports{listErr: errors.New("backend gone")},
	}
	r := newTestRouter(s)

	w := performJSON(t, r, http.MethodGet, "/api/reports", "", "sid")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
