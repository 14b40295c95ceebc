package handler

import (
	"context"
	"net/http"

	"github.com/suraj371k/Job-Portal/internal/employer"
	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/model"
)

// EmployerServiceInterface は企業プロフィールハンドラーが必要とするサービスインターフェース。
type EmployerServiceInterface interface {
	CreateProfile(ctx context.Context, accountID string, input employer.ProfileInput) (*model.EmployerProfile, error)
	GetProfile(ctx context.Context, accountID string) (*model.EmployerProfile, error)
	UpdateProfile(ctx context.Context, accountID string, input employer.ProfileInput) (*model.EmployerProfile, error)
}

// EmployerHandler は企業プロフィールのHTTPハンドラー。
type EmployerHandler struct {
	service EmployerServiceInterface
}

// NewEmployerHandler はEmployerHandlerを生成する。
func NewEmployerHandler(service EmployerServiceInterface) *EmployerHandler {
	return &EmployerHandler{service: service}
}

// CreateProfile は企業プロフィールを作成する。
// POST /api/v1/employer/profile
func (h *EmployerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var input employer.ProfileInput
	if err := decodeBody(r, &input); err != nil {
		handleServiceError(w, err)
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), account.ID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"data": toEmployerProfileResponse(profile)})
}

// GetProfile は自分の企業プロフィールを取得する。
// プロフィール未作成はエラーではなくdata:nullを返す。
// GET /api/v1/employer/profile
func (h *EmployerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), account.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toEmployerProfileResponse(profile)})
}

// UpdateProfile は自分の企業プロフィールを更新する。
// PUT /api/v1/employer/profile
func (h *EmployerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var input employer.ProfileInput
	if err := decodeBody(r, &input); err != nil {
		handleServiceError(w, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), account.ID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toEmployerProfileResponse(profile)})
}
