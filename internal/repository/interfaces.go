// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// AccountRepository はアカウントデータの永続化インターフェース。
type AccountRepository interface {
	// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// FindByEmail はメールアドレスでアカウントを検索する。見つからない場合はnilを返す。
	// メールは小文字に正規化して照合する。
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// Create はアカウントを作成する。メールの一意制約違反はErrDuplicateを返す。
	Create(ctx context.Context, account *model.Account) error

	// UpdateRole はアカウントのロールを更新する。
	UpdateRole(ctx context.Context, id string, role model.Role) error

	// LinkGoogle は既存アカウントにGoogleのsubクレームとアバターを紐付ける。
	LinkGoogle(ctx context.Context, id, googleID, picture string) error
}

// EmployerProfileRepository は企業プロフィールの永続化インターフェース。
type EmployerProfileRepository interface {
	// FindByAccountID はアカウントに1:1で紐付くプロフィールを取得する。
	// 見つからない場合はnilを返す。
	FindByAccountID(ctx context.Context, accountID string) (*model.EmployerProfile, error)

	// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.EmployerProfile, error)

	// Create はプロフィールを作成する。会社名またはアカウントの
	// 一意制約違反はErrDuplicateを返す。
	Create(ctx context.Context, profile *model.EmployerProfile) error

	// Update は指定IDのプロフィールを上書き更新する。
	Update(ctx context.Context, profile *model.EmployerProfile) error
}

// JobRepository は求人データの永続化インターフェース。
type JobRepository interface {
	// Create は求人を作成する。
	Create(ctx context.Context, job *model.Job) error

	// FindByID は求人を掲載企業の抜粋付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.JobWithEmployer, error)

	// List は公開求人一覧をフィルタ適用後、作成日時の降順で返す。
	List(ctx context.Context, filter model.JobFilter) ([]model.JobWithEmployer, error)

	// ListByEmployerID は指定企業の求人一覧を作成日時の降順で返す。
	ListByEmployerID(ctx context.Context, employerID string) ([]model.JobWithEmployer, error)

	// UpdateOwned は(id, employerID)の両方に一致する求人を1クエリで更新する。
	// 一致しない場合（存在しない・他社所有のどちらでも）はfalseを返す。
	UpdateOwned(ctx context.Context, job *model.Job) (bool, error)

	// DeleteOwned は(id, employerID)の両方に一致する求人を1クエリで削除する。
	// 一致しない場合はfalseを返す。
	DeleteOwned(ctx context.Context, id, employerID string) (bool, error)
}

// ApplicationRepository は応募データの永続化インターフェース。
type ApplicationRepository interface {
	// Create は応募を作成する。(job, candidate)の一意制約違反はErrDuplicateを返す。
	// ハンドラー側の事前チェックはレースに弱いため、この制約が最終的な保証になる。
	Create(ctx context.Context, application *model.Application) error

	// FindByJobAndCandidate は(jobID, candidateID)で応募を検索する。
	// 見つからない場合はnilを返す。
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID string) (*model.Application, error)

	// FindByIDWithJob は応募を取得し、対象求人も合わせて返す。
	// 見つからない場合は(nil, nil, nil)を返す。
	FindByIDWithJob(ctx context.Context, id string) (*model.Application, *model.Job, error)

	// ListByCandidateID は候補者の応募一覧を求人・企業の抜粋付きで返す。
	ListByCandidateID(ctx context.Context, candidateID string) ([]model.ApplicationForCandidate, error)

	// ListByEmployerID は指定企業が所有する全求人への応募を
	// 候補者情報付き・作成日時の降順で返す。
	ListByEmployerID(ctx context.Context, employerID string) ([]model.ApplicationForEmployer, error)

	// UpdateStatus は応募のステータスを更新する。
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}

// UserProfileRepository は求職者プロフィールの永続化インターフェース。
type UserProfileRepository interface {
	// FindByAccountID はアカウントに1:1で紐付くプロフィールを取得する。
	// 見つからない場合はnilを返す。
	FindByAccountID(ctx context.Context, accountID string) (*model.UserProfile, error)

	// Create はプロフィールを作成する。アカウントの一意制約違反はErrDuplicateを返す。
	Create(ctx context.Context, profile *model.UserProfile) error

	// Update は指定IDのプロフィールを上書き更新する。
	Update(ctx context.Context, profile *model.UserProfile) error

	// UpdateResumeURL は履歴書ファイルのURLのみを更新する。
	UpdateResumeURL(ctx context.Context, id, resumeURL string) error
}
