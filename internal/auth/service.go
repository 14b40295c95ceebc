// Package auth はパスワード認証、Google OAuthフロー、トークン発行を提供する。
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/repository"
)

// OAuthUserInfo はOAuthプロバイダーから取得したユーザー情報を表す。
type OAuthUserInfo struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをトークンに交換し、ユーザー情報を取得する。
	ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	oauth       OAuthProvider
	accountRepo repository.AccountRepository
	tokens      *TokenIssuer
	stateSecret []byte
}

// NewService はServiceを生成する。
func NewService(
	oauth OAuthProvider,
	accountRepo repository.AccountRepository,
	tokens *TokenIssuer,
	stateSecret string,
) *Service {
	return &Service{
		oauth:       oauth,
		accountRepo: accountRepo,
		tokens:      tokens,
		stateSecret: []byte(stateSecret),
	}
}

// AuthResult は認証操作の結果。アカウントと発行済みトークンを含む。
type AuthResult struct {
	Account *model.Account
	Token   string
}

// Register はパスワードでアカウントを登録し、トークンを発行する。
func (s *Service) Register(ctx context.Context, name, email, password string, role model.Role) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, model.NewValidationError("All fields are required")
	}
	if !model.IsValidRole(role) {
		return nil, model.NewValidationError("Invalid role")
	}

	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if existing != nil {
		if existing.IsGoogleUser {
			return nil, model.NewConflictError("This email is registered with Google. Please use Google login")
		}
		return nil, model.NewConflictError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := &model.Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// 同時登録との競合は一意制約で弾く
		if err == repository.ErrDuplicate {
			return nil, model.NewConflictError("User already exists")
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return &AuthResult{Account: account, Token: token}, nil
}

// Login はメールアドレスとパスワードで認証し、トークンを発行する。
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, model.NewValidationError("All fields are required")
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	// ログイン失敗は原因を問わず既存クライアントの契約どおり400で返す
	if account == nil {
		return nil, model.NewValidationError("User not found")
	}
	if account.IsGoogleUser || account.PasswordHash == "" {
		return nil, model.NewValidationError("This email is registered with google , Please use google login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewValidationError("Invalid credentials")
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("account logged in", slog.String("account_id", account.ID))

	return &AuthResult{Account: account, Token: token}, nil
}

// GetAccount はトークン検証済みのアカウントIDからアカウントを取得する。
func (s *Service) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, model.NewNotFoundError("User not found")
	}
	return account, nil
}

// UpdateRole はアカウントの役割を変更する。
// Googleログイン直後の役割選択画面から呼ばれる。
func (s *Service) UpdateRole(ctx context.Context, accountID string, role model.Role) (*model.Account, error) {
	if !model.IsValidRole(role) {
		return nil, model.NewValidationError("Invalid role")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, model.NewNotFoundError("User not found")
	}

	if err := s.accountRepo.UpdateRole(ctx, accountID, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	account.Role = role

	slog.Info("account role updated",
		slog.String("account_id", accountID),
		slog.String("role", string(role)),
	)

	return account, nil
}

// GoogleAuthResult はGoogle OAuthコールバックの結果。
// IsNewUserは役割未選択の新規Googleユーザーであることを示す。
type GoogleAuthResult struct {
	Account   *model.Account
	Token     string
	IsNewUser bool
}

// GetGoogleLoginURL はCSRF対策のstateを生成し、Google OAuthの認証URLを返す。
func (s *Service) GetGoogleLoginURL() (loginURL, state string, err error) {
	state, err = s.generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}
	return s.oauth.GetLoginURL(state), state, nil
}

// HandleGoogleCallback はGoogle OAuthのコールバックを処理する。
// 未登録のメールアドレスはGoogleユーザーとして自動登録され、
// パスワード登録済みのメールアドレスにはGoogle IDをひも付ける。
func (s *Service) HandleGoogleCallback(ctx context.Context, code string) (*GoogleAuthResult, error) {
	userInfo, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(userInfo.Email))

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if account == nil {
		// 新規ユーザー: 役割は後から選択させるため "user" で作成
		now := time.Now()
		account = &model.Account{
			ID:           uuid.New().String(),
			Name:         userInfo.Name,
			Email:        email,
			Role:         model.RoleUser,
			GoogleID:     userInfo.GoogleID,
			Picture:      userInfo.Picture,
			IsGoogleUser: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		slog.Info("new google account created",
			slog.String("account_id", account.ID),
			slog.String("email", email),
		)
	} else if account.GoogleID == "" {
		// 既存のパスワードアカウントにGoogle IDをひも付ける
		if err := s.accountRepo.LinkGoogle(ctx, account.ID, userInfo.GoogleID, userInfo.Picture); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		account.GoogleID = userInfo.GoogleID
		account.Picture = userInfo.Picture
		account.IsGoogleUser = true
		slog.Info("google account linked", slog.String("account_id", account.ID))
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &GoogleAuthResult{
		Account:   account,
		Token:     token,
		IsNewUser: account.IsGoogleUser && account.Role == model.RoleUser,
	}, nil
}

// generateState はHMAC署名付きのstateを生成する。
// 形式は "<nonce>.<hmac-sha256(nonce)>"。クッキーなしでも改ざんを検出できる。
func (s *Service) generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(b)

	mac := hmac.New(sha256.New, s.stateSecret)
	mac.Write([]byte(nonce))
	sig := hex.EncodeToString(mac.Sum(nil))

	return nonce + "." + sig, nil
}

// VerifyState はstateのHMAC署名を検証する。
func (s *Service) VerifyState(state string) bool {
	parts := strings.SplitN(state, ".", 2)
	if len(parts) != 2 {
		return false
	}

	mac := hmac.New(sha256.New, s.stateSecret)
	mac.Write([]byte(parts[0]))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(parts[1]))
}
