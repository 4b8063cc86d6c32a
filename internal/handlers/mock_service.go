package handlers

import (
	"context"

	ir "incident_reporting"
	"incident_reporting/internal/repository"
)

// ---- Service mocks (error-path tests; happy paths run the real stack) ----

type mockAuth struct {
	registerUser *ir.SafeUser
	registerErr  error
	loginUser    *ir.SafeUser
	loginErr     error
	resetToken   string
	requestErr   error
	resetErr     error
}

func (m *mockAuth) Register(_ context.Context, username, password, role string) (*ir.SafeUser, error) {
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(_ context.Context, username, password string) (*ir.SafeUser, error) {
	return m.loginUser, m.loginErr
}
func (m *mockAuth) RequestReset(_ context.Context, username string) (string, error) {
	return m.resetToken, m.requestErr
}
func (m *mockAuth) ResetPassword(_ context.Context, token, newPassword string) error {
	return m.resetErr
}

type mockSessions struct {
	createID  string
	createErr error
	resolved  map[string]ir.SafeUser
	destroyed []string
}

func (m *mockSessions) Create(user ir.SafeUser) (string, error) {
	return m.createID, m.createErr
}
func (m *mockSessions) Resolve(sessionID string) (*ir.SafeUser, bool) {
	u, ok := m.resolved[sessionID]
	if !ok {
		return nil, false
	}
	return &u, true
}
func (m *mockSessions) Destroy(sessionID string) {
	m.destroyed = append(m.destroyed, sessionID)
}

type mockUsers struct {
	list []ir.SafeUser
	err  error
}

func (m *mockUsers) List(_ context.Context) ([]ir.SafeUser, error) {
	return m.list, m.err
}

type mockReports struct {
	listResp   []ir.Report
	listErr    error
	getResp    *ir.Report
	getErr     error
	fileResp   *ir.Report
	fileErr    error
	updateResp *ir.Report
	updateErr  error
	deleteErr  error
}

func (m *mockReports) List(_ context.Context, f repository.ReportFilter) ([]ir.Report, error) {
	return m.listResp, m.listErr
}
func (m *mockReports) ListForReporter(_ context.Context, reporterID int) ([]ir.Report, error) {
	return m.listResp, m.listErr
}
func (m *mockReports) Get(_ context.Context, id int) (*ir.Report, error) {
	return m.getResp, m.getErr
}
func (m *mockReports) File(_ context.Context, r ir.Report) (*ir.Report, error) {
	return m.fileResp, m.fileErr
}
func (m *mockReports) UpdateStatus(_ context.Context, id int, status string) (*ir.Report, error) {
	return m.updateResp, m.updateErr
}
func (m *mockReports) Delete(_ context.Context, id int) error {
	return m.deleteErr
}
