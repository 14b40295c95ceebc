// Package model はドメインモデルを定義する。
package model

import "time"

// SocialLinks は企業・個人プロフィールの外部リンク集合を表す。
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Website   string `json:"website,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// EmployerProfile は求人企業のプロフィールを表す。
// Accountと1:1で紐付き、会社名は全体で一意。
type EmployerProfile struct {
	ID           string
	AccountID    string
	CompanyName  string
	CompanyLogo  string
	Industry     string
	CompanySize  string // 例: "1-10", "11-50", "51-200"
	Location     string
	Founded      *int
	Description  string
	SocialLinks  SocialLinks
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployerSummary は求人や応募の一覧に埋め込む企業情報の抜粋。
type EmployerSummary struct {
	ID          string
	CompanyName string
	Industry    string
	Location    string
	CompanySize string
}
