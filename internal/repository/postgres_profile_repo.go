package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// PostgresUserProfileRepo はPostgreSQLを使用した求職者プロフィールリポジトリ。
// 構造化されたキャリアデータ（職歴・学歴・希望条件）はJSONBカラムに保持する。
type PostgresUserProfileRepo struct {
	db *sql.DB
}

// NewPostgresUserProfileRepo はPostgresUserProfileRepoを生成する。
func NewPostgresUserProfileRepo(db *sql.DB) *PostgresUserProfileRepo {
	return &PostgresUserProfileRepo{db: db}
}

type userProfileJSON struct {
	skills         []byte
	experience     []byte
	education      []byte
	jobPreferences []byte
	socialLinks    []byte
}

func encodeUserProfile(p *model.UserProfile) (*userProfileJSON, error) {
	enc := &userProfileJSON{}
	var err error
	if enc.skills, err = json.Marshal(p.Skills); err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}
	if enc.experience, err = json.Marshal(p.Experience); err != nil {
		return nil, fmt.Errorf("failed to encode experience: %w", err)
	}
	if enc.education, err = json.Marshal(p.Education); err != nil {
		return nil, fmt.Errorf("failed to encode education: %w", err)
	}
	if enc.jobPreferences, err = json.Marshal(p.JobPreferences); err != nil {
		return nil, fmt.Errorf("failed to encode job preferences: %w", err)
	}
	if enc.socialLinks, err = json.Marshal(p.SocialLinks); err != nil {
		return nil, fmt.Errorf("failed to encode social links: %w", err)
	}
	return enc, nil
}

func decodeUserProfile(p *model.UserProfile, enc *userProfileJSON) error {
	if err := json.Unmarshal(enc.skills, &p.Skills); err != nil {
		return fmt.Errorf("failed to decode skills: %w", err)
	}
	if err := json.Unmarshal(enc.experience, &p.Experience); err != nil {
		return fmt.Errorf("failed to decode experience: %w", err)
	}
	if err := json.Unmarshal(enc.education, &p.Education); err != nil {
		return fmt.Errorf("failed to decode education: %w", err)
	}
	if err := json.Unmarshal(enc.jobPreferences, &p.JobPreferences); err != nil {
		return fmt.Errorf("failed to decode job preferences: %w", err)
	}
	if err := json.Unmarshal(enc.socialLinks, &p.SocialLinks); err != nil {
		return fmt.Errorf("failed to decode social links: %w", err)
	}
	return nil
}

// FindByAccountID はアカウントに紐付くプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresUserProfileRepo) FindByAccountID(ctx context.Context, accountID string) (*model.UserProfile, error) {
	p := &model.UserProfile{}
	enc := &userProfileJSON{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, title, bio, location, phone, skills, experience,
		        education, resume_url, job_preferences, social_links, created_at, updated_at
		 FROM user_profiles WHERE account_id = $1`,
		accountID,
	).Scan(
		&p.ID, &p.AccountID, &p.Title, &p.Bio, &p.Location, &p.Phone,
		&enc.skills, &enc.experience, &enc.education, &p.ResumeURL,
		&enc.jobPreferences, &enc.socialLinks, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}

	if err := decodeUserProfile(p, enc); err != nil {
		return nil, err
	}

	return p, nil
}

// Create はプロフィールを作成する。アカウントの一意制約違反はErrDuplicateを返す。
func (r *PostgresUserProfileRepo) Create(ctx context.Context, profile *model.UserProfile) error {
	enc, err := encodeUserProfile(profile)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_profiles
		   (id, account_id, title, bio, location, phone, skills, experience,
		    education, resume_url, job_preferences, social_links, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		profile.ID, profile.AccountID, profile.Title, profile.Bio, profile.Location,
		profile.Phone, enc.skills, enc.experience, enc.education, profile.ResumeURL,
		enc.jobPreferences, enc.socialLinks, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user profile: %w", err)
	}
	return nil
}

// Update は指定IDのプロフィールを上書き更新する。
func (r *PostgresUserProfileRepo) Update(ctx context.Context, profile *model.UserProfile) error {
	enc, err := encodeUserProfile(profile)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles
		 SET title = $1, bio = $2, location = $3, phone = $4, skills = $5,
		     experience = $6, education = $7, job_preferences = $8, social_links = $9,
		     updated_at = $10
		 WHERE id = $11`,
		profile.Title, profile.Bio, profile.Location, profile.Phone, enc.skills,
		enc.experience, enc.education, enc.jobPreferences, enc.socialLinks,
		time.Now(), profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user profile not found: %s", profile.ID)
	}
	return nil
}

// UpdateResumeURL は履歴書ファイルのURLのみを更新する。
func (r *PostgresUserProfileRepo) UpdateResumeURL(ctx context.Context, id, resumeURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET resume_url = $1, updated_at = $2 WHERE id = $3`,
		resumeURL, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume url: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user profile not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ UserProfileRepository = (*PostgresUserProfileRepo)(nil)
