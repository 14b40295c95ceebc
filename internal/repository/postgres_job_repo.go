package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// PostgresJobRepo はPostgreSQLを使用した求人リポジトリ。
type PostgresJobRepo struct {
	db *sql.DB
}

// NewPostgresJobRepo はPostgresJobRepoを生成する。
func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{db: db}
}

const jobWithEmployerColumns = `j.id, j.employer_id, j.title, j.description, j.salary, j.skills,
	j.job_type, j.vacancies, j.created_at, j.updated_at,
	e.id, e.company_name, e.industry, e.location, e.company_size`

const jobWithEmployerFrom = ` FROM jobs j JOIN employer_profiles e ON e.id = j.employer_id`

func scanJobWithEmployer(scan func(dest ...any) error) (model.JobWithEmployer, error) {
	var jw model.JobWithEmployer
	err := scan(
		&jw.ID, &jw.EmployerID, &jw.Title, &jw.Description, &jw.Salary, &jw.Skills,
		&jw.JobType, &jw.Vacancies, &jw.CreatedAt, &jw.UpdatedAt,
		&jw.Employer.ID, &jw.Employer.CompanyName, &jw.Employer.Industry,
		&jw.Employer.Location, &jw.Employer.CompanySize,
	)
	return jw, err
}

// Create は求人を作成する。
func (r *PostgresJobRepo) Create(ctx context.Context, job *model.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, salary, skills, job_type, vacancies, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		job.ID, job.EmployerID, job.Title, job.Description, job.Salary, job.Skills,
		job.JobType, job.Vacancies, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// FindByID は求人を掲載企業の抜粋付きで取得する。見つからない場合はnilを返す。
func (r *PostgresJobRepo) FindByID(ctx context.Context, id string) (*model.JobWithEmployer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobWithEmployerColumns+jobWithEmployerFrom+` WHERE j.id = $1`,
		id,
	)
	jw, err := scanJobWithEmployer(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &jw, nil
}

// List は公開求人一覧をフィルタ適用後、作成日時の降順で返す。
// 給与の範囲フィルタは数字のみのsalary値に限定して適用する
// （自由記述の給与表記は範囲比較の対象外）。
func (r *PostgresJobRepo) List(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.JobType != "" {
		conds = append(conds, "j.job_type = "+arg(string(filter.JobType)))
	}
	if filter.Title != "" {
		conds = append(conds, "j.title ILIKE "+arg("%"+filter.Title+"%"))
	}
	if filter.MinSalary != nil {
		conds = append(conds, `j.salary ~ '^[0-9]+$' AND j.salary::numeric >= `+arg(*filter.MinSalary))
	}
	if filter.MaxSalary != nil {
		conds = append(conds, `j.salary ~ '^[0-9]+$' AND j.salary::numeric <= `+arg(*filter.MaxSalary))
	}
	if filter.Location != "" {
		// 求人自体ではなく掲載企業の所在地に対する部分一致
		conds = append(conds, "e.location ILIKE "+arg("%"+filter.Location+"%"))
	}

	query := `SELECT ` + jobWithEmployerColumns + jobWithEmployerFrom
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY j.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var results []model.JobWithEmployer
	for rows.Next() {
		jw, err := scanJobWithEmployer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		results = append(results, jw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}

	return results, nil
}

// ListByEmployerID は指定企業の求人一覧を作成日時の降順で返す。
func (r *PostgresJobRepo) ListByEmployerID(ctx context.Context, employerID string) ([]model.JobWithEmployer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobWithEmployerColumns+jobWithEmployerFrom+`
		 WHERE j.employer_id = $1
		 ORDER BY j.created_at DESC`,
		employerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	defer rows.Close()

	var results []model.JobWithEmployer
	for rows.Next() {
		jw, err := scanJobWithEmployer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		results = append(results, jw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job rows: %w", err)
	}

	return results, nil
}

// UpdateOwned は(id, employerID)の両方に一致する求人を1クエリで更新する。
// 存在しない場合と他社所有の場合を区別せずfalseを返すことで、
// リソースの存在を呼び出し元に漏らさない。
func (r *PostgresJobRepo) UpdateOwned(ctx context.Context, job *model.Job) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs
		 SET title = $1, description = $2, salary = $3, skills = $4,
		     job_type = $5, vacancies = $6, updated_at = $7
		 WHERE id = $8 AND employer_id = $9`,
		job.Title, job.Description, job.Salary, job.Skills,
		job.JobType, job.Vacancies, time.Now(), job.ID, job.EmployerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteOwned は(id, employerID)の両方に一致する求人を1クエリで削除する。
// 一致しない場合はfalseを返す。
func (r *PostgresJobRepo) DeleteOwned(ctx context.Context, id, employerID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM jobs WHERE id = $1 AND employer_id = $2`,
		id, employerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ JobRepository = (*PostgresJobRepo)(nil)
