package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suraj371k/Job-Portal/internal/metrics"
)

// NewMetricsMiddleware はリクエスト数とレイテンシをコレクターに記録するミドルウェアを返す。
// パスラベルにはカーディナリティ爆発を避けるためchiのルートパターンを使う。
func NewMetricsMiddleware(collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			collector.RecordHTTPRequest(r.Method, path, rec.statusCode)
			collector.RecordHTTPDuration(r.Method, path, time.Since(start))
		})
	}
}
