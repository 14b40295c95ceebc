package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/suraj371k/Job-Portal/internal/job"
	"github.com/suraj371k/Job-Portal/internal/model"
)

// --- モック定義 ---

// mockJobService はJobServiceInterfaceのモック実装。
type mockJobService struct {
	createFn   func(ctx context.Context, employerID string, input job.Input) (*model.Job, error)
	listFn     func(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error)
	getFn      func(ctx context.Context, id string) (*model.JobWithEmployer, error)
	listMineFn func(ctx context.Context, employerID string) ([]model.JobWithEmployer, error)
	updateFn   func(ctx context.Context, employerID, jobID string, input job.Input) (*model.Job, error)
	deleteFn   func(ctx context.Context, employerID, jobID string) error
}

var _ JobServiceInterface = (*mockJobService)(nil)

func (m *mockJobService) Create(ctx context.Context, employerID string, input job.Input) (*model.Job, error) {
	if m.createFn != nil {
		return m.createFn(ctx, employerID, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockJobService) List(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockJobService) Get(ctx context.Context, id string) (*model.JobWithEmployer, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockJobService) ListMine(ctx context.Context, employerID string) ([]model.JobWithEmployer, error) {
	if m.listMineFn != nil {
		return m.listMineFn(ctx, employerID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockJobService) Update(ctx context.Context, employerID, jobID string, input job.Input) (*model.Job, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, employerID, jobID, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockJobService) Delete(ctx context.Context, employerID, jobID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, employerID, jobID)
	}
	return errors.New("not implemented")
}

func testJobWithEmployer() model.JobWithEmployer {
	return model.JobWithEmployer{
		Job: model.Job{
			ID:         "job-1",
			EmployerID: "employer-1",
			Title:      "Backend Engineer",
			JobType:    model.JobTypeFullTime,
			Vacancies:  2,
		},
		Employer: model.EmployerSummary{
			ID:          "employer-1",
			CompanyName: "Acme Inc",
			Location:    "Tokyo",
		},
	}
}

// --- テスト ---

func TestJobHandler_CreateJob_Success(t *testing.T) {
	svc := &mockJobService{
		createFn: func(ctx context.Context, employerID string, input job.Input) (*model.Job, error) {
			if employerID != "employer-1" {
				t.Errorf("employerID = %q, want %q", employerID, "employer-1")
			}
			return &model.Job{ID: "job-1", EmployerID: employerID, Title: input.Title}, nil
		},
	}
	h := NewJobHandler(svc)

	body := bytes.NewBufferString(`{"title":"Backend Engineer","description":"x","jobType":"full-time","vacancies":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", body)
	req = withEmployerProfile(req, testEmployerProfile())
	w := httptest.NewRecorder()

	h.CreateJob(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	resp := decodeJSONBody(t, w)
	data := resp["data"].(map[string]any)
	if data["title"] != "Backend Engineer" {
		t.Errorf("title = %v, want %q", data["title"], "Backend Engineer")
	}
}

func TestJobHandler_CreateJob_WithoutEmployerProfile(t *testing.T) {
	h := NewJobHandler(&mockJobService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	h.CreateJob(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestJobHandler_ListJobs_ParsesFilters(t *testing.T) {
	var got model.JobFilter
	svc := &mockJobService{
		listFn: func(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error) {
			got = filter
			return []model.JobWithEmployer{testJobWithEmployer()}, nil
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/job?jobType=full-time&title=engineer&minSalary=50000&maxSalary=90000&location=tokyo", nil)
	w := httptest.NewRecorder()

	h.ListJobs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got.JobType != model.JobTypeFullTime {
		t.Errorf("jobType = %q, want %q", got.JobType, model.JobTypeFullTime)
	}
	if got.Title != "engineer" {
		t.Errorf("title = %q, want %q", got.Title, "engineer")
	}
	if got.MinSalary == nil || *got.MinSalary != 50000 {
		t.Errorf("minSalary = %v, want 50000", got.MinSalary)
	}
	if got.MaxSalary == nil || *got.MaxSalary != 90000 {
		t.Errorf("maxSalary = %v, want 90000", got.MaxSalary)
	}
	if got.Location != "tokyo" {
		t.Errorf("location = %q, want %q", got.Location, "tokyo")
	}
}

func TestJobHandler_ListJobs_IgnoresNonNumericSalary(t *testing.T) {
	var got model.JobFilter
	svc := &mockJobService{
		listFn: func(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error) {
			got = filter
			return nil, nil
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job?minSalary=abc", nil)
	w := httptest.NewRecorder()

	h.ListJobs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got.MinSalary != nil {
		t.Errorf("minSalary = %v, want nil", got.MinSalary)
	}
}

func TestJobHandler_GetJob_Success(t *testing.T) {
	svc := &mockJobService{
		getFn: func(ctx context.Context, id string) (*model.JobWithEmployer, error) {
			if id != "job-1" {
				t.Errorf("id = %q, want %q", id, "job-1")
			}
			j := testJobWithEmployer()
			return &j, nil
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/job-1", nil)
	req = withURLParam(req, "id", "job-1")
	w := httptest.NewRecorder()

	h.GetJob(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeJSONBody(t, w)
	data := resp["data"].(map[string]any)
	emp := data["employer"].(map[string]any)
	if emp["companyName"] != "Acme Inc" {
		t.Errorf("companyName = %v, want %q", emp["companyName"], "Acme Inc")
	}
}

func TestJobHandler_GetJob_NotFound(t *testing.T) {
	svc := &mockJobService{
		getFn: func(ctx context.Context, id string) (*model.JobWithEmployer, error) {
			return nil, model.NewNotFoundError("Job not found")
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/missing", nil)
	req = withURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.GetJob(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestJobHandler_UpdateJob_NotOwnedReturnsNotFound(t *testing.T) {
	svc := &mockJobService{
		updateFn: func(ctx context.Context, employerID, jobID string, input job.Input) (*model.Job, error) {
			return nil, model.NewNotFoundError("Job not found")
		},
	}
	h := NewJobHandler(svc)

	body := bytes.NewBufferString(`{"title":"Updated"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/job/job-1", body)
	req = withEmployerProfile(req, testEmployerProfile())
	req = withURLParam(req, "id", "job-1")
	w := httptest.NewRecorder()

	h.UpdateJob(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestJobHandler_DeleteJob_Success(t *testing.T) {
	svc := &mockJobService{
		deleteFn: func(ctx context.Context, employerID, jobID string) error {
			if employerID != "employer-1" || jobID != "job-1" {
				t.Errorf("delete args = (%q, %q), want (employer-1, job-1)", employerID, jobID)
			}
			return nil
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/job/job-1", nil)
	req = withEmployerProfile(req, testEmployerProfile())
	req = withURLParam(req, "id", "job-1")
	w := httptest.NewRecorder()

	h.DeleteJob(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeJSONBody(t, w)
	if resp["message"] != "Job deleted successfully" {
		t.Errorf("message = %v, want %q", resp["message"], "Job deleted successfully")
	}
}

func TestJobHandler_ListMyJobs(t *testing.T) {
	svc := &mockJobService{
		listMineFn: func(ctx context.Context, employerID string) ([]model.JobWithEmployer, error) {
			if employerID != "employer-1" {
				t.Errorf("employerID = %q, want %q", employerID, "employer-1")
			}
			return []model.JobWithEmployer{testJobWithEmployer()}, nil
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/employer/jobs", nil)
	req = withEmployerProfile(req, testEmployerProfile())
	w := httptest.NewRecorder()

	h.ListMyJobs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	resp := decodeJSONBody(t, w)
	data := resp["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("data length = %d, want 1", len(data))
	}
}
