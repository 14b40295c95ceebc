// Package application は求人応募のライフサイクルに関するビジネスロジックを提供する。
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/suraj371k/Job-Portal/internal/mailer"
	"github.com/suraj371k/Job-Portal/internal/metrics"
	"github.com/suraj371k/Job-Portal/internal/model"
	"github.com/suraj371k/Job-Portal/internal/repository"
)

// Service は応募のビジネスロジックを提供する。
type Service struct {
	appRepo      repository.ApplicationRepository
	jobRepo      repository.JobRepository
	employerRepo repository.EmployerProfileRepository
	mailer       mailer.Mailer
	collector    metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	employerRepo repository.EmployerProfileRepository,
	m mailer.Mailer,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		appRepo:      appRepo,
		jobRepo:      jobRepo,
		employerRepo: employerRepo,
		mailer:       m,
		collector:    collector,
	}
}

// Apply は候補者の求人への応募を作成する。
// 同一求人への重複応募は、事前チェックと(job, candidate)の一意制約の
// 両方で弾く。事前チェックは同時応募のレースを防げないため、
// 一意制約違反を同じ応答に正規化する。
// 応募成立後は企業への通知メールを送信するが、送信失敗は応募の成立を妨げない。
func (s *Service) Apply(ctx context.Context, candidateID, jobID string, candidate *model.Account) (*model.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if job == nil {
		return nil, model.NewNotFoundError("Job not found")
	}

	existing, err := s.appRepo.FindByJobAndCandidate(ctx, jobID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing != nil {
		return nil, model.NewConflictError("You have already applied to this job")
	}

	now := time.Now()
	app := &model.Application{
		ID:          uuid.New().String(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      model.StatusApplied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if err == repository.ErrDuplicate {
			return nil, model.NewConflictError("You have already applied to this job")
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.collector.RecordApplicationCreated()

	slog.Info("application created",
		slog.String("application_id", app.ID),
		slog.String("job_id", jobID),
		slog.String("candidate_id", candidateID),
	)

	s.notifyEmployer(ctx, job, candidate)

	return app, nil
}

// notifyEmployer は新規応募を企業に通知する。失敗はログのみに残す。
func (s *Service) notifyEmployer(ctx context.Context, job *model.JobWithEmployer, candidate *model.Account) {
	profile, err := s.employerRepo.FindByID(ctx, job.EmployerID)
	if err != nil || profile == nil || profile.ContactEmail == "" {
		s.collector.RecordNotificationFailed()
		slog.Warn("skipping application notification, no employer contact email",
			slog.String("job_id", job.ID),
			slog.String("employer_id", job.EmployerID),
		)
		return
	}

	if err := s.mailer.SendNewApplicationEmail(
		profile.ContactEmail, job.Title, candidate.Name, candidate.Email,
	); err != nil {
		s.collector.RecordNotificationFailed()
		slog.Error("failed to send application notification",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.collector.RecordNotificationSent()
}

// ListForCandidate は候補者の応募一覧を求人・企業の抜粋付きで返す。
func (s *Service) ListForCandidate(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error) {
	apps, err := s.appRepo.ListByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate applications: %w", err)
	}
	return apps, nil
}

// ListForEmployer は企業が所有する全求人への応募を新着順で返す。
func (s *Service) ListForEmployer(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error) {
	apps, err := s.appRepo.ListByEmployerID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus は応募のステータスを変更する。
// 対象応募の求人を所有する企業のみが変更でき、所有権の不一致は403になる。
func (s *Service) UpdateStatus(ctx context.Context, employerID, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
	if !model.IsValidApplicationStatus(status) {
		return nil, model.NewValidationError("Invalid status")
	}

	app, job, err := s.appRepo.FindByIDWithJob(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	if app == nil {
		return nil, model.NewNotFoundError("Application not found")
	}

	if job.EmployerID != employerID {
		return nil, model.NewForbiddenError("Not authorized")
	}

	if !model.CanTransitionStatus(app.Status, status) {
		return nil, model.NewValidationError("Invalid status")
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	app.Status = status
	app.UpdatedAt = time.Now()

	slog.Info("application status updated",
		slog.String("application_id", applicationID),
		slog.String("status", string(status)),
	)

	return app, nil
}
