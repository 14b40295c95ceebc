package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// PostgresAccountRepo はPostgreSQLを使用したアカウントリポジトリ。
type PostgresAccountRepo struct {
	db *sql.DB
}

// NewPostgresAccountRepo はPostgresAccountRepoを生成する。
func NewPostgresAccountRepo(db *sql.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

const accountColumns = `id, name, email, COALESCE(password_hash, ''), role, COALESCE(google_id, ''), COALESCE(picture, ''), is_google_user, created_at, updated_at`

func scanAccount(row *sql.Row) (*model.Account, error) {
	a := &model.Account{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role,
		&a.GoogleID, &a.Picture, &a.IsGoogleUser, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return a, nil
}

// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
func (r *PostgresAccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`,
		id,
	)
	return scanAccount(row)
}

// FindByEmail はメールアドレスでアカウントを検索する。見つからない場合はnilを返す。
func (r *PostgresAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	return scanAccount(row)
}

// Create はアカウントを作成する。メールの一意制約違反はErrDuplicateを返す。
func (r *PostgresAccountRepo) Create(ctx context.Context, account *model.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, email, password_hash, role, google_id, picture, is_google_user, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9, $10)`,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Role,
		account.GoogleID, account.Picture, account.IsGoogleUser, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// UpdateRole はアカウントのロールを更新する。
func (r *PostgresAccountRepo) UpdateRole(ctx context.Context, id string, role model.Role) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET role = $1, updated_at = $2 WHERE id = $3`,
		role, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update account role: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// LinkGoogle は既存アカウントにGoogleのsubクレームとアバターを紐付ける。
func (r *PostgresAccountRepo) LinkGoogle(ctx context.Context, id, googleID, picture string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts
		 SET google_id = $1, picture = $2, is_google_user = TRUE, updated_at = $3
		 WHERE id = $4`,
		googleID, picture, time.Now(), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to link google account: %w", err)
	}
	return nil
}

// compile-time interface check
var _ AccountRepository = (*PostgresAccountRepo)(nil)
