// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeSuccess は{success:true}に任意のフィールドを合成したレスポンスを書き込む。
func writeSuccess(w http.ResponseWriter, status int, fields map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, status, payload)
}

// writeError は{success:false, message}レスポンスを書き込む。
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// statusForCode はエラー分類をHTTPステータスコードに対応付ける。
// 重複登録・重複応募などの競合は、既存クライアントの契約を維持するため
// 409ではなく400で返す。
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeConflict:
		return http.StatusBadRequest
	case model.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError はサービス層のエラーをHTTPレスポンスへ変換する。
// APIError以外の想定外エラーはログに残し、内容を伏せた500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeError(w, statusForCode(apiErr.Code), apiErr.Message)
		return
	}

	slog.Error("unexpected service error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody はリクエストボディをJSONとしてデコードする。
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("Invalid request body")
	}
	return nil
}
