package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginRateLimiterConfig はログイン試行のレート制限設定を保持する。
type LoginRateLimiterConfig struct {
	Limit           int           // ウィンドウあたりの許容リクエスト数
	Window          time.Duration // レートウィンドウ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// DefaultLoginRateLimiterConfig はデフォルトのレート制限設定を返す。
// ログイン・登録エンドポイントに対してIPあたり15分間に10リクエストまで許容する。
func DefaultLoginRateLimiterConfig() LoginRateLimiterConfig {
	return LoginRateLimiterConfig{
		Limit:           10,
		Window:          15 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// clientLimiter はクライアントIPごとのレートリミッターとアクセス時刻を保持する。
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimiter はクライアントIPごとのログイン試行レート制限を管理する。
// 認証前のエンドポイントで使うため、キーはアカウントではなく送信元IPとなる。
type LoginRateLimiter struct {
	config LoginRateLimiterConfig
	rate   rate.Limit

	mu       sync.RWMutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewLoginRateLimiter は新しいLoginRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewLoginRateLimiter(config LoginRateLimiterConfig) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		config:   config,
		rate:     rate.Limit(float64(config.Limit) / config.Window.Seconds()),
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *LoginRateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware はログイン試行のレート制限ミドルウェアを返す。
// 上限超過時は429とRetry-Afterヘッダーを返す。
func (rl *LoginRateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiter := rl.getOrCreateLimiter(ip)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
			remaining := int(limiter.Tokens())
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !limiter.Allow() {
				rl.writeRateLimitResponse(w)
				slog.Warn("login rate limit exceeded",
					slog.String("client_ip", ip),
					slog.String("path", r.URL.Path),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LimiterCount は現在管理されているリミッターのエントリ数を返す。
// テストおよびメトリクス用。
func (rl *LoginRateLimiter) LimiterCount() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

// getOrCreateLimiter はクライアントIPのリミッターを取得または作成する。
func (rl *LoginRateLimiter) getOrCreateLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	cl, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if exists {
		rl.mu.Lock()
		cl.lastAccess = time.Now()
		rl.mu.Unlock()
		return cl.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// ダブルチェック
	if cl, exists := rl.limiters[ip]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.config.Limit)
	rl.limiters[ip] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop はバックグラウンドで期限切れエントリを定期的にクリーンアップする。
func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup は最終アクセス時刻がレートウィンドウを超えたエントリを削除する。
func (rl *LoginRateLimiter) cleanup() {
	ttl := rl.config.Window

	now := time.Now()

	rl.mu.Lock()
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, ip)
		}
	}
	rl.mu.Unlock()
}

// writeRateLimitResponse は429 Too Many Requestsレスポンスを書き込む。
// Retry-Afterヘッダーにはトークンが補充されるまでの推定秒数を設定する。
func (rl *LoginRateLimiter) writeRateLimitResponse(w http.ResponseWriter) {
	retryAfterSec := int(math.Ceil(1.0 / float64(rl.rate)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Too many login attempts. Please try again later.",
	})
}

// clientIP はリクエストの送信元IPアドレスを返す。
// リバースプロキシ配下ではX-Forwarded-Forの先頭アドレスを優先する。
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
