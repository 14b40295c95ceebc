package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate は一意制約違反を表す。
// メール・会社名・(求人, 候補者)の重複はすべてこのエラーに正規化され、
// サービス層でConflictにマッピングされる。
var ErrDuplicate = errors.New("duplicate key value")

// isUniqueViolation はPostgreSQLの一意制約違反（SQLSTATE 23505）かどうかを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
