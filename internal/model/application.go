// Package model はドメインモデルを定義する。
package model

import "time"

// ApplicationStatus は応募の選考状態を表す。
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// IsValidApplicationStatus はステータス値が定義済みかどうかを返す。
func IsValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusShortlisted, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

// CanTransitionStatus はfromからtoへの状態遷移を許可するかどうかを返す。
// 現在は定義済みステータス間の任意の遷移を許可する（hired→appliedも可）。
// 遷移を制限する場合はこの関数が唯一の変更箇所になる。
func CanTransitionStatus(from, to ApplicationStatus) bool {
	return IsValidApplicationStatus(from) && IsValidApplicationStatus(to)
}

// Application は求人と候補者アカウントを結ぶ応募を表す。
// (JobID, CandidateID)の組は一意で、同じ求人には一度しか応募できない。
// ステータス更新以外で変更されることはなく、削除する操作は存在しない。
type Application struct {
	ID          string
	JobID       string
	CandidateID string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationForCandidate は候補者向け一覧用に求人・企業の抜粋を結合したモデル。
type ApplicationForCandidate struct {
	Application
	JobTitle    string
	Salary      string
	PostedAt    time.Time
	CompanyName string
	Location    string
}

// ApplicationForEmployer は企業向け一覧用に候補者情報と求人タイトルを結合したモデル。
type ApplicationForEmployer struct {
	Application
	CandidateName  string
	CandidateEmail string
	JobTitle       string
}
