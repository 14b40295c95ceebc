package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/model"
)

// ApplicationServiceInterface は応募ハンドラーが必要とするサービスインターフェース。
type ApplicationServiceInterface interface {
	Apply(ctx context.Context, candidateID, jobID string, candidate *model.Account) (*model.Application, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error)
	ListForEmployer(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error)
	UpdateStatus(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error)
}

// ApplicationHandler は応募のHTTPハンドラー。
type ApplicationHandler struct {
	service ApplicationServiceInterface
}

// NewApplicationHandler はApplicationHandlerを生成する。
func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply は求人に応募する。同じ求人への重複応募はできない。
// POST /api/v1/application/{jobId}/apply
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	app, err := h.service.Apply(r.Context(), account.ID, chi.URLParam(r, "jobId"), account)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"data": toApplicationResponse(app)})
}

// ListMine は自分の応募一覧を求人・企業情報付きで返す。
// GET /api/v1/application
func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	apps, err := h.service.ListForCandidate(r.Context(), account.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toCandidateApplicationResponses(apps)})
}

// ListApplicants は自社求人への応募を候補者情報付きで返す。
// GET /api/v1/application/all-applicants
func (h *ApplicationHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.EmployerProfileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "No employer profile found for this user.")
		return
	}

	apps, err := h.service.ListForEmployer(r.Context(), profile.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"totalApplications": len(apps),
		"data":              toEmployerApplicationResponses(apps),
	})
}

// UpdateStatus は自社求人への応募ステータスを更新する。
// PUT /api/v1/application/{applicationId}/status
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.EmployerProfileFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "No employer profile found for this user.")
		return
	}

	var body struct {
		Status model.ApplicationStatus `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		handleServiceError(w, err)
		return
	}

	app, err := h.service.UpdateStatus(r.Context(), profile.ID, chi.URLParam(r, "applicationId"), body.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toApplicationResponse(app)})
}
