// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError はサービス層からハンドラー層へ伝搬するエラーの統一フォーマット。
// CodeはHTTPステータスへのマッピングにのみ使用し、クライアントには
// Messageだけを返す。
type APIError struct {
	Code    string
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// NewValidationError は入力不備エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{Code: ErrCodeValidation, Message: message}
}

// NewUnauthenticatedError は未認証エラーを生成する。
func NewUnauthenticatedError(message string) *APIError {
	return &APIError{Code: ErrCodeUnauthenticated, Message: message}
}

// NewForbiddenError はロール・所有権不一致エラーを生成する。
func NewForbiddenError(message string) *APIError {
	return &APIError{Code: ErrCodeForbidden, Message: message}
}

// NewNotFoundError はリソース未検出エラーを生成する。
// 求人の更新・削除では所有権不一致の隠蔽にも使用する。
func NewNotFoundError(message string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: message}
}

// NewConflictError は一意制約違反（メール・会社名・応募の重複）エラーを生成する。
func NewConflictError(message string) *APIError {
	return &APIError{Code: ErrCodeConflict, Message: message}
}
