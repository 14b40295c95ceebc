package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/suraj371k/Job-Portal/internal/job"
	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/model"
)

// JobServiceInterface は求人ハンドラーが必要とするサービスインターフェース。
type JobServiceInterface interface {
	Create(ctx context.Context, employerID string, input job.Input) (*model.Job, error)
	List(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error)
	Get(ctx context.Context, id string) (*model.JobWithEmployer, error)
	ListMine(ctx context.Context, employerID string) ([]model.JobWithEmployer, error)
	Update(ctx context.Context, employerID, jobID string, input job.Input) (*model.Job, error)
	Delete(ctx context.Context, employerID, jobID string) error
}

// JobHandler は求人のHTTPハンドラー。
type JobHandler struct {
	service JobServiceInterface
}

// NewJobHandler はJobHandlerを生成する。
func NewJobHandler(service JobServiceInterface) *JobHandler {
	return &JobHandler{service: service}
}

// CreateJob は求人を作成する。企業プロフィール作成済みの企業アカウントのみ。
// POST /api/v1/job
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.EmployerProfileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "No employer profile found for this user.")
		return
	}

	var input job.Input
	if err := decodeBody(r, &input); err != nil {
		handleServiceError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), profile.ID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"data": toJobResponse(created)})
}

// parseSalaryParam は整数の給与パラメータを解釈する。数値でない値は無視する。
func parseSalaryParam(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ListJobs は公開求人を検索する。全フィルターはAND条件。
// GET /api/v1/job
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.JobFilter{
		JobType:   model.JobType(q.Get("jobType")),
		Title:     q.Get("title"),
		MinSalary: parseSalaryParam(q.Get("minSalary")),
		MaxSalary: parseSalaryParam(q.Get("maxSalary")),
		Location:  q.Get("location"),
	}

	jobs, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toJobWithEmployerResponses(jobs)})
}

// GetJob は求人を1件取得する。
// GET /api/v1/job/{id}
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toJobWithEmployerResponse(found)})
}

// ListMyJobs は自社の求人一覧を返す。
// GET /api/v1/job/employer/jobs
func (h *JobHandler) ListMyJobs(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.EmployerProfileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "No employer profile found for this user.")
		return
	}

	jobs, err := h.service.ListMine(r.Context(), profile.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toJobWithEmployerResponses(jobs)})
}

// UpdateJob は自社の求人を更新する。他社の求人は404になる。
// PUT /api/v1/job/{id}
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.EmployerProfileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "No employer profile found for this user.")
		return
	}

	var input job.Input
	if err := decodeBody(r, &input); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), profile.ID, chi.URLParam(r, "id"), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toJobResponse(updated)})
}

// DeleteJob は自社の求人を削除する。
// DELETE /api/v1/job/{id}
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.EmployerProfileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "No employer profile found for this user.")
		return
	}

	if err := h.service.Delete(r.Context(), profile.ID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"message": "Job deleted successfully"})
}
