// Package model はドメインモデルを定義する。
package model

import "time"

// Role はアカウントの種別を表す。
type Role string

const (
	// RoleUser は求職者アカウント。
	RoleUser Role = "user"
	// RoleEmployer は求人企業アカウント。
	RoleEmployer Role = "employer"
)

// IsValidRole はロール値が定義済みかどうかを返す。
func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleEmployer
}

// Account はログイン可能なアカウントを表す。
// パスワード認証とGoogle OAuthの両方に対応する。
// IsGoogleUserがfalseのアカウントは永続化前にPasswordHashを持たなければならない
// （サービス層で検証する）。
type Account struct {
	ID           string
	Name         string
	Email        string // 小文字で正規化、全体で一意
	PasswordHash string // Googleのみのアカウントでは空
	Role         Role
	GoogleID     string // OAuthのsubクレーム。存在する場合は一意
	Picture      string
	IsGoogleUser bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
