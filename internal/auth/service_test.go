package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/repository"
)

// --- モック定義 ---

type mockAccountRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.Account, error)
	findByEmailFn func(ctx context.Context, email string) (*model.Account, error)
	createFn      func(ctx context.Context, account *model.Account) error
	updateRoleFn  func(ctx context.Context, id string, role model.Role) error
	linkGoogleFn  func(ctx context.Context, id, googleID, picture string) error
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepo) Create(ctx context.Context, account *model.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepo) UpdateRole(ctx context.Context, id string, role model.Role) error {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, id, role)
	}
	return nil
}

func (m *mockAccountRepo) LinkGoogle(ctx context.Context, id, googleID, picture string) error {
	if m.linkGoogleFn != nil {
		return m.linkGoogleFn(ctx, id, googleID, picture)
	}
	return nil
}

type mockOAuthProvider struct {
	getLoginURLFn  func(state string) string
	exchangeCodeFn func(ctx context.Context, code string) (*OAuthUserInfo, error)
}

func (m *mockOAuthProvider) GetLoginURL(state string) string {
	if m.getLoginURLFn != nil {
		return m.getLoginURLFn(state)
	}
	return ""
}

func (m *mockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error) {
	if m.exchangeCodeFn != nil {
		return m.exchangeCodeFn(ctx, code)
	}
	return nil, nil
}

// --- compile-time interface checks ---
var _ repository.AccountRepository = (*mockAccountRepo)(nil)
var _ OAuthProvider = (*mockOAuthProvider)(nil)

func newTestService(oauth OAuthProvider, repo repository.AccountRepository) *Service {
	return NewService(oauth, repo, NewTokenIssuer("test-secret", time.Hour), "state-secret")
}

// --- テスト ---

func TestRegister_NewAccount_ReturnsToken(t *testing.T) {
	ctx := context.Background()

	var created *model.Account
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, account *model.Account) error {
			created = account
			return nil
		},
	}

	svc := newTestService(nil, repo)

	result, err := svc.Register(ctx, "Taro", "Taro@Example.com", "password123", model.RoleUser)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.Token == "" {
		t.Error("expected non-empty token")
	}
	if created == nil {
		t.Fatal("expected account to be created")
	}
	// メールアドレスは小文字に正規化されること
	if created.Email != "taro@example.com" {
		t.Errorf("created email = %q, want %q", created.Email, "taro@example.com")
	}
	// 平文パスワードを保存しないこと
	if created.PasswordHash == "password123" || created.PasswordHash == "" {
		t.Error("password must be stored as a bcrypt hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegister_MissingFields_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, &mockAccountRepo{})

	_, err := svc.Register(ctx, "", "taro@example.com", "password123", model.RoleUser)
	if err == nil {
		t.Fatal("expected error for missing name")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
	if apiErr.Message != "All fields are required" {
		t.Errorf("error message = %q, want %q", apiErr.Message, "All fields are required")
	}
}

func TestRegister_InvalidRole_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, &mockAccountRepo{})

	_, err := svc.Register(ctx, "Taro", "taro@example.com", "password123", model.Role("admin"))
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestRegister_ExistingEmail_ReturnsConflict(t *testing.T) {
	ctx := context.Background()

	repo := &mockAccountRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Account, error) {
			return &model.Account{ID: "existing", Email: email}, nil
		},
	}
	svc := newTestService(nil, repo)

	_, err := svc.Register(ctx, "Taro", "taro@example.com", "password123", model.RoleUser)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeConflict {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeConflict)
	}
	if apiErr.Message != "User already exists" {
		t.Errorf("error message = %q, want %q", apiErr.Message, "User already exists")
	}
}

func TestRegister_GoogleRegisteredEmail_PointsToGoogleLogin(t *testing.T) {
	ctx := context.Background()

	repo := &mockAccountRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Account, error) {
			return &model.Account{ID: "existing", Email: email, IsGoogleUser: true}, nil
		},
	}
	svc := newTestService(nil, repo)

	_, err := svc.Register(ctx, "Taro", "taro@example.com", "password123", model.RoleUser)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "This email is registered with Google. Please use Google login" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestRegister_ConcurrentDuplicate_ReturnsConflict(t *testing.T) {
	ctx := context.Background()

	// FindByEmailはnilを返すがCreateが一意制約違反になる競合ケース
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, account *model.Account) error {
			return repository.ErrDuplicate
		},
	}
	svc := newTestService(nil, repo)

	_, err := svc.Register(ctx, "Taro", "taro@example.com", "password123", model.RoleUser)

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeConflict {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeConflict)
	}
}

func TestLogin_ValidCredentials_ReturnsToken(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	repo := &mockAccountRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Account, error) {
			return &model.Account{
				ID:           "account-1",
				Email:        email,
				PasswordHash: string(hash),
				Role:         model.RoleUser,
			}, nil
		},
	}
	svc := newTestService(nil, repo)

	result, err := svc.Login(ctx, "taro@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("expected non-empty token")
	}
	if result.Account.ID != "account-1" {
		t.Errorf("account ID = %q, want %q", result.Account.ID, "account-1")
	}
}

func TestLogin_UnknownEmail_ReturnsBadRequest(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil, &mockAccountRepo{})

	_, err := svc.Login(ctx, "nobody@example.com", "password123")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	// ログイン失敗は原因を問わず400系(VALIDATION)で返す
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
	if apiErr.Message != "User not found" {
		t.Errorf("error message = %q, want %q", apiErr.Message, "User not found")
	}
}

func TestLogin_WrongPassword_ReturnsBadRequest(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	repo := &mockAccountRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Account, error) {
			return &model.Account{ID: "account-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestService(nil, repo)

	_, err = svc.Login(ctx, "taro@example.com", "wrong-password")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("error code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("error message = %q, want %q", apiErr.Message, "Invalid credentials")
	}
}

func TestLogin_GoogleAccount_PointsToGoogleLogin(t *testing.T) {
	ctx := context.Background()

	repo := &mockAccountRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Account, error) {
			return &model.Account{ID: "account-1", Email: email, IsGoogleUser: true}, nil
		},
	}
	svc := newTestService(nil, repo)

	_, err := svc.Login(ctx, "taro@example.com", "password123")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "This email is registered with google , Please use google login" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestUpdateRole_SetsRole(t *testing.T) {
	ctx := context.Background()

	var updatedID string
	var updatedRole model.Role
	repo := &mockAccountRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Account, error) {
			return &model.Account{ID: id, Role: model.RoleUser}, nil
		},
		updateRoleFn: func(ctx context.Context, id string, role model.Role) error {
			updatedID = id
			updatedRole = role
			return nil
		},
	}
	svc := newTestService(nil, repo)

	account, err := svc.UpdateRole(ctx, "account-1", model.RoleEmployer)
	if err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}

	if updatedID != "account-1" {
		t.Errorf("updated ID = %q, want %q", updatedID, "account-1")
	}
	if updatedRole != model.RoleEmployer {
		t.Errorf("updated role = %q, want %q", updatedRole, model.RoleEmployer)
	}
	if account.Role != model.RoleEmployer {
		t.Errorf("returned account role = %q, want %q", account.Role, model.RoleEmployer)
	}
}

func TestHandleGoogleCallback_NewUser_CreatesGoogleAccount(t *testing.T) {
	ctx := context.Background()

	var created *model.Account
	provider := &mockOAuthProvider{
		exchangeCodeFn: func(ctx context.Context, code string) (*OAuthUserInfo, error) {
			return &OAuthUserInfo{
				GoogleID: "google-123",
				Email:    "New@Example.com",
				Name:     "New User",
				Picture:  "https://example.com/p.png",
			}, nil
		},
	}
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, account *model.Account) error {
			created = account
			return nil
		},
	}
	svc := newTestService(provider, repo)

	result, err := svc.HandleGoogleCallback(ctx, "auth-code-123")
	if err != nil {
		t.Fatalf("HandleGoogleCallback() error = %v", err)
	}

	if created == nil {
		t.Fatal("expected account to be created")
	}
	if created.Email != "new@example.com" {
		t.Errorf("created email = %q, want %q", created.Email, "new@example.com")
	}
	if !created.IsGoogleUser {
		t.Error("expected IsGoogleUser = true")
	}
	if created.Role != model.RoleUser {
		t.Errorf("created role = %q, want %q", created.Role, model.RoleUser)
	}
	// 役割未選択の新規GoogleユーザーはIsNewUser
	if !result.IsNewUser {
		t.Error("expected IsNewUser = true")
	}
	if result.Token == "" {
		t.Error("expected non-empty token")
	}
}

func TestHandleGoogleCallback_ExistingPasswordAccount_LinksGoogle(t *testing.T) {
	ctx := context.Background()

	var linkedID, linkedGoogleID string
	provider := &mockOAuthProvider{
		exchangeCodeFn: func(ctx context.Context, code string) (*OAuthUserInfo, error) {
			return &OAuthUserInfo{
				GoogleID: "google-456",
				Email:    "existing@example.com",
				Name:     "Existing User",
			}, nil
		},
	}
	repo := &mockAccountRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.Account, error) {
			return &model.Account{
				ID:           "account-1",
				Email:        email,
				PasswordHash: "some-hash",
				Role:         model.RoleEmployer,
			}, nil
		},
		linkGoogleFn: func(ctx context.Context, id, googleID, picture string) error {
			linkedID = id
			linkedGoogleID = googleID
			return nil
		},
	}
	svc := newTestService(provider, repo)

	result, err := svc.HandleGoogleCallback(ctx, "auth-code-456")
	if err != nil {
		t.Fatalf("HandleGoogleCallback() error = %v", err)
	}

	if linkedID != "account-1" {
		t.Errorf("linked account ID = %q, want %q", linkedID, "account-1")
	}
	if linkedGoogleID != "google-456" {
		t.Errorf("linked google ID = %q, want %q", linkedGoogleID, "google-456")
	}
	// 役割選択済みのemployerはIsNewUserにならない
	if result.IsNewUser {
		t.Error("expected IsNewUser = false for employer account")
	}
}

func TestHandleGoogleCallback_OAuthError_ReturnsError(t *testing.T) {
	ctx := context.Background()

	provider := &mockOAuthProvider{
		exchangeCodeFn: func(ctx context.Context, code string) (*OAuthUserInfo, error) {
			return nil, errors.New("oauth exchange failed")
		},
	}
	svc := newTestService(provider, &mockAccountRepo{})

	if _, err := svc.HandleGoogleCallback(ctx, "bad-code"); err == nil {
		t.Fatal("expected error from HandleGoogleCallback")
	}
}

func TestState_GenerateAndVerify(t *testing.T) {
	svc := newTestService(&mockOAuthProvider{}, &mockAccountRepo{})

	_, state, err := svc.GetGoogleLoginURL()
	if err != nil {
		t.Fatalf("GetGoogleLoginURL() error = %v", err)
	}
	if !strings.Contains(state, ".") {
		t.Fatalf("state %q should contain a signature separator", state)
	}

	if !svc.VerifyState(state) {
		t.Error("expected state to verify")
	}
	if svc.VerifyState(state + "tampered") {
		t.Error("tampered state must not verify")
	}
	if svc.VerifyState("no-separator") {
		t.Error("malformed state must not verify")
	}
}
