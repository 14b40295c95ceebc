package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/suraj371k/Job-Portal/internal/metrics"
	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/model"
)

// Pinger はヘルスチェックで疎通確認する依存を表す。*sql.DBが満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	AccountFinder     middleware.AccountFinder
	EmployerFinder    middleware.EmployerProfileFinder
	CORSAllowedOrigin string
	LoginRateLimiter  *middleware.LoginRateLimiter

	// 監視
	Collector metrics.MetricsCollector
	Gatherer  prometheus.Gatherer
	DB        Pinger

	// 各ドメインのサービス
	AuthService        AuthServiceInterface
	AuthConfig         AuthHandlerConfig
	EmployerService    EmployerServiceInterface
	JobService         JobServiceInterface
	ApplicationService ApplicationServiceInterface
	ProfileService     ProfileServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → Logging
//
// 認証が必要なルートはその内側でAuth → RequireRole → RequireEmployerProfileを重ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewMetricsMiddleware(deps.Collector))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	employerHandler := NewEmployerHandler(deps.EmployerService)
	jobHandler := NewJobHandler(deps.JobService)
	applicationHandler := NewApplicationHandler(deps.ApplicationService)
	profileHandler := NewProfileHandler(deps.ProfileService)

	authn := middleware.NewAuthMiddleware(deps.TokenVerifier, deps.AccountFinder)
	requireUser := middleware.NewRequireRoleMiddleware(model.RoleUser)
	requireEmployer := middleware.NewRequireRoleMiddleware(model.RoleEmployer)
	requireEmployerProfile := middleware.NewRequireEmployerProfileMiddleware(deps.EmployerFinder)

	r.Route("/api/v1", func(r chi.Router) {
		// 認証
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			// ブルートフォース対策としてログインにのみレート制限をかける
			r.With(deps.LoginRateLimiter.Middleware()).Post("/login", authHandler.Login)

			r.Get("/google", authHandler.GoogleLogin)
			r.Get("/google/callback", authHandler.GoogleCallback)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Get("/me", authHandler.Me)
				r.Put("/update-role", authHandler.UpdateRole)
			})
		})

		// 企業プロフィール
		r.Route("/employer/profile", func(r chi.Router) {
			r.Use(authn)
			r.Use(requireEmployer)
			r.Post("/", employerHandler.CreateProfile)
			r.Get("/", employerHandler.GetProfile)
			r.Put("/", employerHandler.UpdateProfile)
		})

		// 求人
		r.Route("/job", func(r chi.Router) {
			// 公開エンドポイント
			r.Get("/", jobHandler.ListJobs)
			r.Get("/{id}", jobHandler.GetJob)

			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Use(requireEmployer)
				r.Use(requireEmployerProfile)
				r.Post("/", jobHandler.CreateJob)
				r.Get("/employer/jobs", jobHandler.ListMyJobs)
				r.Put("/{id}", jobHandler.UpdateJob)
				r.Delete("/{id}", jobHandler.DeleteJob)
			})
		})

		// 応募
		r.Route("/application", func(r chi.Router) {
			r.Use(authn)

			r.Group(func(r chi.Router) {
				r.Use(requireUser)
				r.Post("/{jobId}/apply", applicationHandler.Apply)
				r.Get("/", applicationHandler.ListMine)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireEmployer)
				r.Use(requireEmployerProfile)
				r.Get("/all-applicants", applicationHandler.ListApplicants)
				r.Put("/{applicationId}/status", applicationHandler.UpdateStatus)
			})
		})

		// 求職者プロフィール
		r.Route("/user/profile", func(r chi.Router) {
			r.Use(authn)
			r.Use(requireUser)
			r.Post("/me", profileHandler.CreateProfile)
			r.Get("/me", profileHandler.GetProfile)
			r.Put("/me", profileHandler.UpdateProfile)
			r.Post("/resume", profileHandler.UploadResume)
		})
	})

	// 死活確認。DB疎通まで確認する
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"status": "unhealthy",
					"error":  "database unreachable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}
