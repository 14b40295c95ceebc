package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// --- モック定義 ---

// mockApplicationService はApplicationServiceInterfaceのモック実装。
type mockApplicationService struct {
	applyFn            func(ctx context.Context, candidateID, jobID string, candidate *model.Account) (*model.Application, error)
	listForCandidateFn func(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error)
	listForEmployerFn  func(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error)
	updateStatusFn     func(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error)
}

var _ ApplicationServiceInterface = (*mockApplicationService)(nil)

func (m *mockApplicationService) Apply(ctx context.Context, candidateID, jobID string, candidate *model.Account) (*model.Application, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, candidateID, jobID, candidate)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) ListForCandidate(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error) {
	if m.listForCandidateFn != nil {
		return m.listForCandidateFn(ctx, candidateID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) ListForEmployer(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error) {
	if m.listForEmployerFn != nil {
		return m.listForEmployerFn(ctx, employerID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) UpdateStatus(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, employerID, applicationID, status)
	}
	return nil, errors.New("not implemented")
}

// --- テスト ---

func TestApplicationHandler_Apply_Success(t *testing.T) {
	svc := &mockApplicationService{
		applyFn: func(ctx context.Context, candidateID, jobID string, candidate *model.Account) (*model.Application, error) {
			if candidateID != "account-1" {
				t.Errorf("candidateID = %q, want %q", candidateID, "account-1")
			}
			if jobID != "job-1" {
				t.Errorf("jobID = %q, want %q", jobID, "job-1")
			}
			if candidate == nil || candidate.ID != candidateID {
				t.Errorf("candidate = %v, want account %q", candidate, candidateID)
			}
			return &model.Application{
				ID:          "app-1",
				JobID:       jobID,
				CandidateID: candidateID,
				Status:      model.StatusApplied,
			}, nil
		},
	}
	h := NewApplicationHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/application/job-1/apply", nil)
	req = withAccount(req, testAccount(model.RoleUser))
	req = withURLParam(req, "jobId", "job-1")
	w := httptest.NewRecorder()

	h.Apply(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	resp := decodeJSONBody(t, w)
	data := resp["data"].(map[string]any)
	if data["status"] != "applied" {
		t.Errorf("status = %v, want %q", data["status"], "applied")
	}
}

func TestApplicationHandler_Apply_Duplicate(t *testing.T) {
	svc := &mockApplicationService{
		applyFn: func(ctx context.Context, candidateID, jobID string, candidate *model.Account) (*model.Application, error) {
			return nil, model.NewConflictError("You have already applied to this job")
		},
	}
	h := NewApplicationHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/application/job-1/apply", nil)
	req = withAccount(req, testAccount(model.RoleUser))
	req = withURLParam(req, "jobId", "job-1")
	w := httptest.NewRecorder()

	h.Apply(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeJSONBody(t, w)
	if resp["message"] != "You have already applied to this job" {
		t.Errorf("message = %v, want duplicate message", resp["message"])
	}
}

func TestApplicationHandler_ListMine(t *testing.T) {
	svc := &mockApplicationService{
		listForCandidateFn: func(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error) {
			return []model.ApplicationForCandidate{
				{
					Application: model.Application{ID: "app-1", JobID: "job-1", Status: model.StatusApplied},
					JobTitle:    "Backend Engineer",
					CompanyName: "Acme Inc",
				},
			}, nil
		},
	}
	h := NewApplicationHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/application", nil)
	req = withAccount(req, testAccount(model.RoleUser))
	w := httptest.NewRecorder()

	h.ListMine(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeJSONBody(t, w)
	data := resp["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("data length = %d, want 1", len(data))
	}
	app := data[0].(map[string]any)
	jobInfo := app["job"].(map[string]any)
	if jobInfo["title"] != "Backend Engineer" {
		t.Errorf("job title = %v, want %q", jobInfo["title"], "Backend Engineer")
	}
	if jobInfo["companyName"] != "Acme Inc" {
		t.Errorf("companyName = %v, want %q", jobInfo["companyName"], "Acme Inc")
	}
}

func TestApplicationHandler_ListApplicants(t *testing.T) {
	svc := &mockApplicationService{
		listForEmployerFn: func(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error) {
			if employerID != "employer-1" {
				t.Errorf("employerID = %q, want %q", employerID, "employer-1")
			}
			return []model.ApplicationForEmployer{
				{
					Application:    model.Application{ID: "app-1", JobID: "job-1", CandidateID: "account-2", Status: model.StatusApplied},
					CandidateName:  "Bob",
					CandidateEmail: "bob@example.com",
					JobTitle:       "Backend Engineer",
				},
				{
					Application:   model.Application{ID: "app-2", JobID: "job-1", CandidateID: "account-3", Status: model.StatusShortlisted},
					CandidateName: "Carol",
					JobTitle:      "Backend Engineer",
				},
			}, nil
		},
	}
	h := NewApplicationHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/application/all-applicants", nil)
	req = withEmployerProfile(req, testEmployerProfile())
	w := httptest.NewRecorder()

	h.ListApplicants(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeJSONBody(t, w)
	if int(resp["totalApplications"].(float64)) != 2 {
		t.Errorf("totalApplications = %v, want 2", resp["totalApplications"])
	}
	data := resp["data"].([]any)
	first := data[0].(map[string]any)
	candidate := first["candidate"].(map[string]any)
	if candidate["email"] != "bob@example.com" {
		t.Errorf("candidate email = %v, want %q", candidate["email"], "bob@example.com")
	}
}

func TestApplicationHandler_UpdateStatus_Success(t *testing.T) {
	svc := &mockApplicationService{
		updateStatusFn: func(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
			if applicationID != "app-1" {
				t.Errorf("applicationID = %q, want %q", applicationID, "app-1")
			}
			if status != model.StatusShortlisted {
				t.Errorf("status = %q, want %q", status, model.StatusShortlisted)
			}
			return &model.Application{ID: applicationID, Status: status}, nil
		},
	}
	h := NewApplicationHandler(svc)

	body := bytes.NewBufferString(`{"status":"shortlisted"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/application/app-1/status", body)
	req = withEmployerProfile(req, testEmployerProfile())
	req = withURLParam(req, "applicationId", "app-1")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeJSONBody(t, w)
	data := resp["data"].(map[string]any)
	if data["status"] != "shortlisted" {
		t.Errorf("status = %v, want %q", data["status"], "shortlisted")
	}
}

func TestApplicationHandler_UpdateStatus_NotOwned(t *testing.T) {
	svc := &mockApplicationService{
		updateStatusFn: func(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
			return nil, model.NewForbiddenError("Not authorized")
		},
	}
	h := NewApplicationHandler(svc)

	body := bytes.NewBufferString(`{"status":"hired"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/application/app-1/status", body)
	req = withEmployerProfile(req, testEmployerProfile())
	req = withURLParam(req, "applicationId", "app-1")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestApplicationHandler_UpdateStatus_InvalidValue(t *testing.T) {
	svc := &mockApplicationService{
		updateStatusFn: func(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
			return nil, model.NewValidationError("Invalid status")
		},
	}
	h := NewApplicationHandler(svc)

	body := bytes.NewBufferString(`{"status":"promoted"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/application/app-1/status", body)
	req = withEmployerProfile(req, testEmployerProfile())
	req = withURLParam(req, "applicationId", "app-1")
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
