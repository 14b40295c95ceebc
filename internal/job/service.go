// Package job は求人の作成・検索・管理に関するビジネスロジックを提供する。
package job

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/suraj371k/Job-Portal/internal/metrics"
	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/repository"
	"github.com/suraj371k/Job-Portal/internal/security"
)

const (
	maxTitleLength       = 100
	minDescriptionLength = 50
	maxDescriptionLength = 2000
	minVacancies         = 1
	maxVacancies         = 1000
)

// Input は求人の作成・更新リクエスト。
type Input struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Salary      string        `json:"salary"`
	Skills      string        `json:"skills"`
	JobType     model.JobType `json:"jobType"`
	Vacancies   int           `json:"vacancies"`
}

// Service は求人のビジネスロジックを提供する。
type Service struct {
	jobRepo   repository.JobRepository
	sanitizer security.ContentSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(jobRepo repository.JobRepository, sanitizer security.ContentSanitizerService, collector metrics.MetricsCollector) *Service {
	return &Service{jobRepo: jobRepo, sanitizer: sanitizer, collector: collector}
}

// validate は求人入力を検証する。
func validate(input *Input) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Salary = strings.TrimSpace(input.Salary)
	input.Skills = strings.TrimSpace(input.Skills)

	if input.Title == "" || input.Description == "" || input.Salary == "" || input.Skills == "" {
		return model.NewValidationError("All fields are required")
	}
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		return model.NewValidationError(
			fmt.Sprintf("Title must be at most %d characters", maxTitleLength))
	}
	if n := utf8.RuneCountInString(input.Description); n < minDescriptionLength || n > maxDescriptionLength {
		return model.NewValidationError(
			fmt.Sprintf("Description must be between %d and %d characters", minDescriptionLength, maxDescriptionLength))
	}
	if !model.IsValidJobType(input.JobType) {
		return model.NewValidationError("Invalid job type")
	}
	if input.Vacancies < minVacancies || input.Vacancies > maxVacancies {
		return model.NewValidationError(
			fmt.Sprintf("Vacancies must be between %d and %d", minVacancies, maxVacancies))
	}
	return nil
}

// Create は企業プロフィールに紐付く求人を作成する。
// 説明文はXSS対策として保存前にサニタイズされる。
func (s *Service) Create(ctx context.Context, employerID string, input Input) (*model.Job, error) {
	if err := validate(&input); err != nil {
		return nil, err
	}

	now := time.Now()
	job := &model.Job{
		ID:          uuid.New().String(),
		EmployerID:  employerID,
		Title:       input.Title,
		Description: s.sanitizer.Sanitize(input.Description),
		Salary:      input.Salary,
		Skills:      input.Skills,
		JobType:     input.JobType,
		Vacancies:   input.Vacancies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	s.collector.RecordJobCreated()

	slog.Info("job created",
		slog.String("job_id", job.ID),
		slog.String("employer_id", employerID),
	)

	return job, nil
}

// List は公開求人を新着順で検索する。フィルターは全てのAND条件。
func (s *Service) List(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error) {
	jobs, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Get は求人を企業サマリー付きで取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.JobWithEmployer, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job == nil {
		return nil, model.NewNotFoundError("Job not found")
	}
	return job, nil
}

// ListMine は企業プロフィールが投稿した求人を新着順で返す。
func (s *Service) ListMine(ctx context.Context, employerID string) ([]model.JobWithEmployer, error) {
	jobs, err := s.jobRepo.ListByEmployerID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	return jobs, nil
}

// Update は自社の求人を更新する。
// 他社の求人は存在自体を隠すため、所有権不一致も404として扱う。
func (s *Service) Update(ctx context.Context, employerID, jobID string, input Input) (*model.Job, error) {
	if err := validate(&input); err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:          jobID,
		EmployerID:  employerID,
		Title:       input.Title,
		Description: s.sanitizer.Sanitize(input.Description),
		Salary:      input.Salary,
		Skills:      input.Skills,
		JobType:     input.JobType,
		Vacancies:   input.Vacancies,
		UpdatedAt:   time.Now(),
	}

	updated, err := s.jobRepo.UpdateOwned(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if !updated {
		return nil, model.NewNotFoundError("Job not found")
	}

	return job, nil
}

// Delete は自社の求人を削除する。所有権不一致も404として扱う。
func (s *Service) Delete(ctx context.Context, employerID, jobID string) error {
	deleted, err := s.jobRepo.DeleteOwned(ctx, jobID, employerID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if !deleted {
		return model.NewNotFoundError("Job not found")
	}

	slog.Info("job deleted",
		slog.String("job_id", jobID),
		slog.String("employer_id", employerID),
	)

	return nil
}
