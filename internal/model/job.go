// Package model はドメインモデルを定義する。
package model

import "time"

// JobType は求人の雇用形態を表す。
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

// IsValidJobType は雇用形態の値が定義済みかどうかを返す。
func IsValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

// Job は求人を表す。EmployerProfileに対して多:1で所有される。
// 所有者がEmployerProfile（Accountではない）である点は意図的な間接参照で、
// アカウント名義の変更に求人が影響されないようにしている。
type Job struct {
	ID          string
	EmployerID  string // EmployerProfileのID
	Title       string
	Description string
	Salary      string // 自由記述。数値のみの場合に範囲フィルタの対象になる
	Skills      string
	JobType     JobType
	Vacancies   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobWithEmployer は求人と掲載企業の抜粋を結合したモデル。
// 公開APIのレスポンスで使用する。
type JobWithEmployer struct {
	Job
	Employer EmployerSummary
}

// JobFilter は公開求人一覧の検索条件を表す。
// ゼロ値のフィールドは条件として適用されない。
type JobFilter struct {
	JobType   JobType
	Title     string // 部分一致、大文字小文字を区別しない
	MinSalary *int64
	MaxSalary *int64
	Location  string // 掲載企業の所在地に対する部分一致
}
