package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// PostgresEmployerProfileRepo はPostgreSQLを使用した企業プロフィールリポジトリ。
type PostgresEmployerProfileRepo struct {
	db *sql.DB
}

// NewPostgresEmployerProfileRepo はPostgresEmployerProfileRepoを生成する。
func NewPostgresEmployerProfileRepo(db *sql.DB) *PostgresEmployerProfileRepo {
	return &PostgresEmployerProfileRepo{db: db}
}

const employerProfileColumns = `id, account_id, company_name, company_logo, industry, company_size,
	location, founded, description, social_links, contact_email, contact_phone,
	created_at, updated_at`

// FindByAccountID はアカウントに紐付くプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresEmployerProfileRepo) FindByAccountID(ctx context.Context, accountID string) (*model.EmployerProfile, error) {
	return r.findBy(ctx, "account_id", accountID)
}

// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresEmployerProfileRepo) FindByID(ctx context.Context, id string) (*model.EmployerProfile, error) {
	return r.findBy(ctx, "id", id)
}

func (r *PostgresEmployerProfileRepo) findBy(ctx context.Context, column, value string) (*model.EmployerProfile, error) {
	p := &model.EmployerProfile{}
	var socialLinks []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT `+employerProfileColumns+` FROM employer_profiles WHERE `+column+` = $1`,
		value,
	).Scan(
		&p.ID, &p.AccountID, &p.CompanyName, &p.CompanyLogo, &p.Industry, &p.CompanySize,
		&p.Location, &p.Founded, &p.Description, &socialLinks, &p.ContactEmail, &p.ContactPhone,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find employer profile: %w", err)
	}

	if err := json.Unmarshal(socialLinks, &p.SocialLinks); err != nil {
		return nil, fmt.Errorf("failed to decode social links: %w", err)
	}

	return p, nil
}

// Create はプロフィールを作成する。会社名・アカウントの一意制約違反はErrDuplicateを返す。
func (r *PostgresEmployerProfileRepo) Create(ctx context.Context, profile *model.EmployerProfile) error {
	socialLinks, err := json.Marshal(profile.SocialLinks)
	if err != nil {
		return fmt.Errorf("failed to encode social links: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO employer_profiles
		   (id, account_id, company_name, company_logo, industry, company_size,
		    location, founded, description, social_links, contact_email, contact_phone,
		    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		profile.ID, profile.AccountID, profile.CompanyName, profile.CompanyLogo,
		profile.Industry, profile.CompanySize, profile.Location, profile.Founded,
		profile.Description, socialLinks, profile.ContactEmail, profile.ContactPhone,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert employer profile: %w", err)
	}
	return nil
}

// Update は指定IDのプロフィールを上書き更新する。
func (r *PostgresEmployerProfileRepo) Update(ctx context.Context, profile *model.EmployerProfile) error {
	socialLinks, err := json.Marshal(profile.SocialLinks)
	if err != nil {
		return fmt.Errorf("failed to encode social links: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE employer_profiles
		 SET company_name = $1, company_logo = $2, industry = $3, company_size = $4,
		     location = $5, founded = $6, description = $7, social_links = $8,
		     contact_email = $9, contact_phone = $10, updated_at = $11
		 WHERE id = $12`,
		profile.CompanyName, profile.CompanyLogo, profile.Industry, profile.CompanySize,
		profile.Location, profile.Founded, profile.Description, socialLinks,
		profile.ContactEmail, profile.ContactPhone, time.Now(), profile.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update employer profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("employer profile not found: %s", profile.ID)
	}
	return nil
}

// compile-time interface check
var _ EmployerProfileRepository = (*PostgresEmployerProfileRepo)(nil)
