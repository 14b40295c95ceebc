package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/suraj371k/Job-Portal/internal/model"
)

type mockVerifier struct {
	verifyFn func(token string) (string, error)
}

func (m *mockVerifier) Verify(token string) (string, error) {
	if m.verifyFn != nil {
		return m.verifyFn(token)
	}
	return "", errors.New("no verify fn")
}

type mockAccountFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.Account, error)
}

func (m *mockAccountFinder) FindByID(ctx context.Context, id string) (*model.Account, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

type mockProfileFinder struct {
	findByAccountIDFn func(ctx context.Context, accountID string) (*model.EmployerProfile, error)
}

func (m *mockProfileFinder) FindByAccountID(ctx context.Context, accountID string) (*model.EmployerProfile, error) {
	if m.findByAccountIDFn != nil {
		return m.findByAccountIDFn(ctx, accountID)
	}
	return nil, nil
}

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Success {
		t.Error("expected success = false")
	}
	return body.Message
}

func TestAuthMiddleware_NoCookie_Returns401(t *testing.T) {
	var called bool
	mw := NewAuthMiddleware(&mockVerifier{}, &mockAccountFinder{})
	handler := mw(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if msg := decodeMessage(t, rec); msg != "Not authorized, no token" {
		t.Errorf("message = %q, want %q", msg, "Not authorized, no token")
	}
	if called {
		t.Error("handler should not be called")
	}
}

func TestAuthMiddleware_InvalidToken_Returns401(t *testing.T) {
	var called bool
	verifier := &mockVerifier{
		verifyFn: func(token string) (string, error) {
			return "", errors.New("signature invalid")
		},
	}
	mw := NewAuthMiddleware(verifier, &mockAccountFinder{})
	handler := mw(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "bad-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("handler should not be called")
	}
}

func TestAuthMiddleware_DeletedAccount_Returns401(t *testing.T) {
	var called bool
	verifier := &mockVerifier{
		verifyFn: func(token string) (string, error) { return "gone-account", nil },
	}
	finder := &mockAccountFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Account, error) {
			return nil, nil
		},
	}
	mw := NewAuthMiddleware(verifier, finder)
	handler := mw(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if msg := decodeMessage(t, rec); msg != "Not authorized, user not found" {
		t.Errorf("message = %q, want %q", msg, "Not authorized, user not found")
	}
}

func TestAuthMiddleware_ValidToken_InjectsAccount(t *testing.T) {
	account := &model.Account{ID: "account-1", Role: model.RoleUser}
	verifier := &mockVerifier{
		verifyFn: func(token string) (string, error) { return "account-1", nil },
	}
	finder := &mockAccountFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Account, error) {
			return account, nil
		},
	}

	var gotAccount *model.Account
	mw := NewAuthMiddleware(verifier, finder)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccount, _ = AccountFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotAccount == nil || gotAccount.ID != "account-1" {
		t.Errorf("account in context = %+v, want ID account-1", gotAccount)
	}
}

func TestRequireRoleMiddleware_WrongRole_Returns403(t *testing.T) {
	var called bool
	mw := NewRequireRoleMiddleware(model.RoleEmployer)
	handler := mw(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", nil)
	ctx := ContextWithAccount(req.Context(), &model.Account{ID: "a", Role: model.RoleUser})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if called {
		t.Error("handler should not be called")
	}
}

func TestRequireRoleMiddleware_MatchingRole_Passes(t *testing.T) {
	var called bool
	mw := NewRequireRoleMiddleware(model.RoleEmployer)
	handler := mw(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", nil)
	ctx := ContextWithAccount(req.Context(), &model.Account{ID: "a", Role: model.RoleEmployer})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Error("handler should be called")
	}
}

func TestRequireEmployerProfileMiddleware_NoProfile_Returns403(t *testing.T) {
	var called bool
	mw := NewRequireEmployerProfileMiddleware(&mockProfileFinder{})
	handler := mw(okHandler(t, &called))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", nil)
	ctx := ContextWithAccount(req.Context(), &model.Account{ID: "a", Role: model.RoleEmployer})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if msg := decodeMessage(t, rec); msg != "No employer profile found for this user." {
		t.Errorf("message = %q", msg)
	}
}

func TestRequireEmployerProfileMiddleware_WithProfile_InjectsProfile(t *testing.T) {
	profile := &model.EmployerProfile{ID: "profile-1", AccountID: "a"}
	finder := &mockProfileFinder{
		findByAccountIDFn: func(ctx context.Context, accountID string) (*model.EmployerProfile, error) {
			return profile, nil
		},
	}

	var gotProfile *model.EmployerProfile
	mw := NewRequireEmployerProfileMiddleware(finder)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProfile, _ = EmployerProfileFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", nil)
	ctx := ContextWithAccount(req.Context(), &model.Account{ID: "a", Role: model.RoleEmployer})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotProfile == nil || gotProfile.ID != "profile-1" {
		t.Errorf("profile in context = %+v, want ID profile-1", gotProfile)
	}
}
