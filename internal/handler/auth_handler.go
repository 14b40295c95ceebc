package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/suraj371k/Job-Portal/internal/auth"
	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/model"
)

const oauthStateCookie = "oauth_state"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*auth.AuthResult, error)
	Login(ctx context.Context, email, password string) (*auth.AuthResult, error)
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	UpdateRole(ctx context.Context, accountID string, role model.Role) (*model.Account, error)
	GetGoogleLoginURL() (loginURL, state string, err error)
	VerifyState(state string) bool
	HandleGoogleCallback(ctx context.Context, code string) (*auth.GoogleAuthResult, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	FrontendURL  string
	CookieDomain string
	CookieSecure bool
	TokenMaxAge  time.Duration
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
	}
}

// accountResponse はパスワードハッシュを除いたアカウントのAPIレスポンス。
type accountResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Picture      string    `json:"picture,omitempty"`
	IsGoogleUser bool      `json:"isGoogleUser"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toAccountResponse(a *model.Account) accountResponse {
	return accountResponse{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Role:         string(a.Role),
		Picture:      a.Picture,
		IsGoogleUser: a.IsGoogleUser,
		CreatedAt:    a.CreatedAt,
	}
}

// setTokenCookie は認証トークンをhttpOnlyクッキーとして設定する。
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   int(h.config.TokenMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookie は認証トークンのクッキーを削除する。
func (h *AuthHandler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// registerRequest は登録リクエストのボディ。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register はパスワードでアカウントを登録する。
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleUser
	}

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token)
	writeSuccess(w, http.StatusCreated, map[string]any{
		"user": toAccountResponse(result.Account),
	})
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login はメールアドレスとパスワードで認証する。
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token)
	writeSuccess(w, http.StatusOK, map[string]any{
		"user": toAccountResponse(result.Account),
	})
}

// Logout は認証クッキーを削除する。トークンの有無を問わず成功を返す。
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	writeSuccess(w, http.StatusOK, map[string]any{
		"message": "Logged out successfully",
	})
}

// Me は認証済みアカウントを返す。
// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"user": toAccountResponse(account),
	})
}

// updateRoleRequest は役割変更リクエストのボディ。
type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole は認証済みアカウントの役割を変更する。
// PUT /api/v1/auth/update-role
func (h *AuthHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	var req updateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.service.UpdateRole(r.Context(), account.ID, model.Role(req.Role))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"user": toAccountResponse(updated),
	})
}

// GoogleLogin はGoogle OAuthフローを開始する。
// GET /api/v1/auth/google
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	loginURL, state, err := h.service.GetGoogleLoginURL()
	if err != nil {
		slog.Error("failed to start google oauth", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// stateをCookieに保存（CSRF対策）
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10分
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, loginURL, http.StatusTemporaryRedirect)
}

// GoogleCallback はGoogle OAuthのコールバックを処理し、
// 認証結果をフロントエンドへリダイレクトで引き渡す。
// GET /api/v1/auth/google/callback?code=xxx&state=yyy
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	failureURL := h.config.FrontendURL + "/login?error=" + url.QueryEscape("Google authentication failed")

	// stateの検証（CSRF対策）: クッキーとの一致とHMAC署名の両方を確認する
	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value != state || !h.service.VerifyState(state) {
		slog.Warn("oauth state mismatch", slog.String("query_state", state))
		http.Redirect(w, r, failureURL, http.StatusTemporaryRedirect)
		return
	}

	// stateクッキーを削除
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, failureURL, http.StatusTemporaryRedirect)
		return
	}

	result, err := h.service.HandleGoogleCallback(r.Context(), code)
	if err != nil {
		slog.Error("google oauth callback failed", slog.String("error", err.Error()))
		http.Redirect(w, r, failureURL, http.StatusTemporaryRedirect)
		return
	}

	h.setTokenCookie(w, result.Token)

	// フロントエンドにはクエリパラメータでユーザー情報を引き渡す
	data, err := json.Marshal(map[string]any{
		"user":      toAccountResponse(result.Account),
		"isNewUser": result.IsNewUser,
	})
	if err != nil {
		slog.Error("failed to encode oauth redirect payload", slog.String("error", err.Error()))
		http.Redirect(w, r, failureURL, http.StatusTemporaryRedirect)
		return
	}

	successURL := h.config.FrontendURL + "/auth/google/callback?data=" + url.QueryEscape(string(data))
	http.Redirect(w, r, successURL, http.StatusTemporaryRedirect)
}
