package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した応募リポジトリ。
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

// Create は応募を作成する。(job_id, candidate_id)の一意制約違反はErrDuplicateを返す。
// 同一ペアへの同時applyは一方だけが成功し、もう一方はこのエラーを観測する。
func (r *PostgresApplicationRepo) Create(ctx context.Context, application *model.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		application.ID, application.JobID, application.CandidateID, application.Status,
		application.CreatedAt, application.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// FindByJobAndCandidate は(jobID, candidateID)で応募を検索する。見つからない場合はnilを返す。
func (r *PostgresApplicationRepo) FindByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*model.Application, error) {
	a := &model.Application{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, job_id, candidate_id, status, created_at, updated_at
		 FROM applications
		 WHERE job_id = $1 AND candidate_id = $2`,
		jobID, candidateID,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	return a, nil
}

// FindByIDWithJob は応募と対象求人を取得する。見つからない場合は(nil, nil, nil)を返す。
// ステータス更新時の所有権検証に求人のemployer_idが必要になる。
func (r *PostgresApplicationRepo) FindByIDWithJob(ctx context.Context, id string) (*model.Application, *model.Job, error) {
	a := &model.Application{}
	j := &model.Job{}
	err := r.db.QueryRowContext(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.created_at, a.updated_at,
		        j.id, j.employer_id, j.title, j.description, j.salary, j.skills,
		        j.job_type, j.vacancies, j.created_at, j.updated_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		id,
	).Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Salary, &j.Skills,
		&j.JobType, &j.Vacancies, &j.CreatedAt, &j.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find application with job: %w", err)
	}

	return a, j, nil
}

// ListByCandidateID は候補者の応募一覧を求人・企業の抜粋付きで返す。
func (r *PostgresApplicationRepo) ListByCandidateID(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.created_at, a.updated_at,
		        j.title, j.salary, j.created_at, e.company_name, e.location
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN employer_profiles e ON e.id = j.employer_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate applications: %w", err)
	}
	defer rows.Close()

	var results []model.ApplicationForCandidate
	for rows.Next() {
		var ac model.ApplicationForCandidate
		if err := rows.Scan(
			&ac.ID, &ac.JobID, &ac.CandidateID, &ac.Status, &ac.CreatedAt, &ac.UpdatedAt,
			&ac.JobTitle, &ac.Salary, &ac.PostedAt, &ac.CompanyName, &ac.Location,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		results = append(results, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate application rows: %w", err)
	}

	return results, nil
}

// ListByEmployerID は指定企業が所有する全求人への応募を作成日時の降順で返す。
func (r *PostgresApplicationRepo) ListByEmployerID(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.created_at, a.updated_at,
		        c.name, c.email, j.title
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN accounts c ON c.id = a.candidate_id
		 WHERE j.employer_id = $1
		 ORDER BY a.created_at DESC`,
		employerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer applications: %w", err)
	}
	defer rows.Close()

	var results []model.ApplicationForEmployer
	for rows.Next() {
		var ae model.ApplicationForEmployer
		if err := rows.Scan(
			&ae.ID, &ae.JobID, &ae.CandidateID, &ae.Status, &ae.CreatedAt, &ae.UpdatedAt,
			&ae.CandidateName, &ae.CandidateEmail, &ae.JobTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		results = append(results, ae)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate application rows: %w", err)
	}

	return results, nil
}

// UpdateStatus は応募のステータスを更新する。
func (r *PostgresApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
