package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"incident_reporting/internal/repository"
	"incident_reporting/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Shared test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

// newMemoryRouter wires the real service stack over the in-memory backend,
// so flow tests exercise everything below the HTTP layer for real.
func newMemoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouter(service.NewService(repository.NewMemory()))
}

func performJSON(t *testing.T, r *gin.Engine, method, path, body, sessionID string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("cannot decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &l); err != nil {
		t.Fatalf("cannot decode body %q: %v", w.Body.String(), err)
	}
	return l
}

// sessionCookieFrom extracts the session cookie value set by the response,
// or "" if the cookie is absent or cleared.
func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	return ""
}

// register creates an account through the API and returns its session id.
func register(t *testing.T, r *gin.Engine, username, password, role string) string {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"`
	if role != "" {
		body += `,"role":"` + role + `"`
	}
	body += `}`
	w := performJSON(t, r, http.MethodPost, "/api/register", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %q: status=%d body=%s", username, w.Code, w.Body.String())
	}
	id := sessionCookieFrom(t, w)
	if id == "" {
		t.Fatalf("register %q: no session cookie set", username)
	}
	return id
}
