// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// TokenCookieName は認証トークンを格納するクッキー名。
const TokenCookieName = "token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	accountContextKey         = contextKey("account")
	employerProfileContextKey = contextKey("employer_profile")
)

// TokenVerifier はトークンを検証しアカウントIDを取り出すインターフェース。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AccountFinder はアカウントの検索に必要なインターフェース。
// repository.AccountRepositoryの部分集合として定義する。
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*model.Account, error)
}

// EmployerProfileFinder は企業プロフィールの検索に必要なインターフェース。
type EmployerProfileFinder interface {
	FindByAccountID(ctx context.Context, accountID string) (*model.EmployerProfile, error)
}

// writeAuthError は認証・認可エラーのJSONレスポンスを書き込む。
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// NewAuthMiddleware はhttpOnlyクッキーのトークンを検証し、
// アカウントをリクエストコンテキストに注入するミドルウェアを返す。
// 未認証リクエストには401を返す。
func NewAuthMiddleware(verifier TokenVerifier, accounts AccountFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil || cookie.Value == "" {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			accountID, err := verifier.Verify(cookie.Value)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			account, err := accounts.FindByID(r.Context(), accountID)
			if err != nil {
				slog.Error("failed to find account for token",
					slog.String("error", err.Error()),
				)
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}
			if account == nil {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRequireRoleMiddleware は認証済みアカウントの役割を検査するミドルウェアを返す。
// 役割が一致しない場合は403を返す。NewAuthMiddlewareの後に配置する。
func NewRequireRoleMiddleware(role model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}
			if account.Role != role {
				writeAuthError(w, http.StatusForbidden,
					"Access denied. Required role: "+string(role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRequireEmployerProfileMiddleware は認証済みアカウントに企業プロフィールが
// 存在することを要求するミドルウェアを返す。プロフィールをコンテキストに注入する。
// 求人の作成や応募管理など、企業プロフィールIDが必要なルートで使用する。
func NewRequireEmployerProfileMiddleware(profiles EmployerProfileFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, ok := AccountFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized, no token")
				return
			}

			profile, err := profiles.FindByAccountID(r.Context(), account.ID)
			if err != nil {
				slog.Error("failed to find employer profile",
					slog.String("account_id", account.ID),
					slog.String("error", err.Error()),
				)
				writeAuthError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if profile == nil {
				writeAuthError(w, http.StatusForbidden, "No employer profile found for this user.")
				return
			}

			ctx := context.WithValue(r.Context(), employerProfileContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext はリクエストコンテキストから認証済みアカウントを取得する。
func AccountFromContext(ctx context.Context) (*model.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*model.Account)
	return account, ok && account != nil
}

// EmployerProfileFromContext はリクエストコンテキストから企業プロフィールを取得する。
func EmployerProfileFromContext(ctx context.Context) (*model.EmployerProfile, bool) {
	profile, ok := ctx.Value(employerProfileContextKey).(*model.EmployerProfile)
	return profile, ok && profile != nil
}

// ContextWithAccount はコンテキストにアカウントを注入する。テスト用。
func ContextWithAccount(ctx context.Context, account *model.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}

// ContextWithEmployerProfile はコンテキストに企業プロフィールを注入する。テスト用。
func ContextWithEmployerProfile(ctx context.Context, profile *model.EmployerProfile) context.Context {
	return context.WithValue(ctx, employerProfileContextKey, profile)
}
