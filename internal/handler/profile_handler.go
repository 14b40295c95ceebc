package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/profile"
)

// レジュメアップロードの最大サイズ。
const maxResumeSize = 10 << 20 // 10MB

// ProfileServiceInterface は求職者プロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	Create(ctx context.Context, accountID string, input profile.Input) (*model.UserProfile, error)
	Get(ctx context.Context, accountID string) (*model.UserProfile, error)
	Update(ctx context.Context, accountID string, input profile.Input) (*model.UserProfile, error)
	UploadResume(ctx context.Context, accountID, filename, contentType string, r io.Reader, size int64) (string, error)
}

// ProfileHandler は求職者プロフィールのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// CreateProfile は求職者プロフィールを作成する。
// POST /api/v1/user/profile/me
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var input profile.Input
	if err := decodeBody(r, &input); err != nil {
		handleServiceError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), account.ID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"data": toUserProfileResponse(created)})
}

// GetProfile は自分の求職者プロフィールを取得する。
// プロフィール未作成はエラーではなくdata:nullを返す。
// GET /api/v1/user/profile/me
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	found, err := h.service.Get(r.Context(), account.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toUserProfileResponse(found)})
}

// UpdateProfile は自分の求職者プロフィールを更新する。
// PUT /api/v1/user/profile/me
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var input profile.Input
	if err := decodeBody(r, &input); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), account.ID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": toUserProfileResponse(updated)})
}

// UploadResume はレジュメをアップロードしてプロフィールに紐付ける。
// PDFとWord文書のみ受け付ける。
// POST /api/v1/user/profile/resume
func (h *ProfileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Resume file is required")
		return
	}
	defer file.Close()

	url, err := h.service.UploadResume(
		r.Context(),
		account.ID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"data": map[string]string{"resumeUrl": url}})
}
