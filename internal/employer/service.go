// Package employer は企業プロフィールに関するビジネスロジックを提供する。
package employer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/repository"
)

// ProfileInput は企業プロフィールの作成・更新リクエスト。
type ProfileInput struct {
	CompanyName  string            `json:"companyName"`
	CompanyLogo  string            `json:"companyLogo"`
	Industry     string            `json:"industry"`
	CompanySize  string            `json:"companySize"`
	Location     string            `json:"location"`
	Founded      *int              `json:"founded"`
	Description  string            `json:"description"`
	SocialLinks  model.SocialLinks `json:"socialLinks"`
	ContactEmail string            `json:"contactEmail"`
	ContactPhone string            `json:"contactPhone"`
}

// Service は企業プロフィールのビジネスロジックを提供する。
type Service struct {
	profileRepo repository.EmployerProfileRepository
}

// NewService はServiceを生成する。
func NewService(profileRepo repository.EmployerProfileRepository) *Service {
	return &Service{profileRepo: profileRepo}
}

// CreateProfile は企業プロフィールを作成する。
// 1アカウントにつき1プロフィール。会社名はサービス全体で一意。
func (s *Service) CreateProfile(ctx context.Context, accountID string, input ProfileInput) (*model.EmployerProfile, error) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	if input.CompanyName == "" {
		return nil, model.NewValidationError("Company name is required")
	}

	existing, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employer profile: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("Employer profile already exists for this user")
	}

	now := time.Now()
	profile := &model.EmployerProfile{
		ID:           uuid.New().String(),
		AccountID:    accountID,
		CompanyName:  input.CompanyName,
		CompanyLogo:  input.CompanyLogo,
		Industry:     input.Industry,
		CompanySize:  input.CompanySize,
		Location:     input.Location,
		Founded:      input.Founded,
		Description:  input.Description,
		SocialLinks:  input.SocialLinks,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// 会社名とアカウントの一意制約が同時登録の最終防衛線
		if err == repository.ErrDuplicate {
			return nil, model.NewConflictError("Company name already taken")
		}
		return nil, fmt.Errorf("failed to create employer profile: %w", err)
	}

	slog.Info("employer profile created",
		slog.String("profile_id", profile.ID),
		slog.String("account_id", accountID),
	)

	return profile, nil
}

// GetProfile はアカウントの企業プロフィールを取得する。
// プロフィール未作成の場合はnilを返し、エラーにはしない。
func (s *Service) GetProfile(ctx context.Context, accountID string) (*model.EmployerProfile, error) {
	profile, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employer profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile は自分の企業プロフィールを更新する。
func (s *Service) UpdateProfile(ctx context.Context, accountID string, input ProfileInput) (*model.EmployerProfile, error) {
	profile, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employer profile: %w", err)
	}
	if profile == nil {
		return nil, model.NewNotFoundError("Employer profile not found")
	}

	if name := strings.TrimSpace(input.CompanyName); name != "" {
		profile.CompanyName = name
	}
	profile.CompanyLogo = input.CompanyLogo
	profile.Industry = input.Industry
	profile.CompanySize = input.CompanySize
	profile.Location = input.Location
	profile.Founded = input.Founded
	profile.Description = input.Description
	profile.SocialLinks = input.SocialLinks
	profile.ContactEmail = input.ContactEmail
	profile.ContactPhone = input.ContactPhone
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if err == repository.ErrDuplicate {
			return nil, model.NewConflictError("Company name already taken")
		}
		return nil, fmt.Errorf("failed to update employer profile: %w", err)
	}

	return profile, nil
}
