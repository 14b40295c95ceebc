// Package profile は求職者プロフィールと履歴書アップロードのビジネスロジックを提供する。
package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/repository"
	"github.com/suraj371k/Job-Portal/internal/storage"
)

// 履歴書として受け付けるMIMEタイプ。
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Input は求職者プロフィールの作成・更新リクエスト。
type Input struct {
	Title          string               `json:"title"`
	Bio            string               `json:"bio"`
	Location       string               `json:"location"`
	Phone          string               `json:"phone"`
	Skills         []string             `json:"skills"`
	Experience     []model.Experience   `json:"experience"`
	Education      []model.Education    `json:"education"`
	JobPreferences model.JobPreferences `json:"jobPreferences"`
	SocialLinks    model.SocialLinks    `json:"socialLinks"`
}

// Service は求職者プロフィールのビジネスロジックを提供する。
type Service struct {
	profileRepo repository.UserProfileRepository
	resumes     storage.ResumeStorage
}

// NewService はServiceを生成する。
func NewService(profileRepo repository.UserProfileRepository, resumes storage.ResumeStorage) *Service {
	return &Service{profileRepo: profileRepo, resumes: resumes}
}

// Create は求職者プロフィールを作成する。1アカウントにつき1プロフィール。
func (s *Service) Create(ctx context.Context, accountID string, input Input) (*model.UserProfile, error) {
	existing, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("Profile already exists for this user")
	}

	now := time.Now()
	profile := &model.UserProfile{
		ID:             uuid.New().String(),
		AccountID:      accountID,
		Title:          strings.TrimSpace(input.Title),
		Bio:            input.Bio,
		Location:       input.Location,
		Phone:          input.Phone,
		Skills:         input.Skills,
		Experience:     input.Experience,
		Education:      input.Education,
		JobPreferences: input.JobPreferences,
		SocialLinks:    input.SocialLinks,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if err == repository.ErrDuplicate {
			return nil, model.NewConflictError("Profile already exists for this user")
		}
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	slog.Info("user profile created",
		slog.String("profile_id", profile.ID),
		slog.String("account_id", accountID),
	)

	return profile, nil
}

// Get はアカウントの求職者プロフィールを取得する。
// プロフィール未作成の場合はnilを返し、エラーにはしない。
func (s *Service) Get(ctx context.Context, accountID string) (*model.UserProfile, error) {
	profile, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}
	return profile, nil
}

// Update は自分の求職者プロフィールを更新する。履歴書URLは変更しない。
func (s *Service) Update(ctx context.Context, accountID string, input Input) (*model.UserProfile, error) {
	profile, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}
	if profile == nil {
		return nil, model.NewNotFoundError("Profile not found")
	}

	profile.Title = strings.TrimSpace(input.Title)
	profile.Bio = input.Bio
	profile.Location = input.Location
	profile.Phone = input.Phone
	profile.Skills = input.Skills
	profile.Experience = input.Experience
	profile.Education = input.Education
	profile.JobPreferences = input.JobPreferences
	profile.SocialLinks = input.SocialLinks
	profile.UpdatedAt = time.Now()
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return profile, nil
}

// UploadResume は履歴書ファイルをオブジェクトストレージに保存し、
// URLをプロフィールに記録する。受け付けるのはPDFとWord文書のみ。
func (s *Service) UploadResume(ctx context.Context, accountID, filename, contentType string, r io.Reader, size int64) (string, error) {
	if !allowedResumeTypes[contentType] {
		return "", model.NewValidationError("Only PDF and Word documents are allowed")
	}

	profile, err := s.profileRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to find user profile: %w", err)
	}
	if profile == nil {
		return "", model.NewNotFoundError("Profile not found")
	}

	url, err := s.resumes.Upload(ctx, accountID, filename, contentType, r, size)
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}

	if err := s.profileRepo.UpdateResumeURL(ctx, profile.ID, url); err != nil {
		return "", fmt.Errorf("failed to save resume url: %w", err)
	}

	slog.Info("resume uploaded",
		slog.String("account_id", accountID),
		slog.String("resume_url", url),
	)

	return url, nil
}
