// Package app はアプリケーションの起動と依存関係のワイヤリングを担う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/suraj371k/Job-Portal/internal/application"
	"github.com/suraj371k/Job-Portal/internal/auth"
	"github.com/suraj371k/Job-Portal/internal/config"
	"github.com/suraj371k/Job-Portal/internal/database"
	"github.com/suraj371k/Job-Portal/internal/employer"
	"github.com/suraj371k/Job-Portal/internal/handler"
	"github.com/suraj371k/Job-Portal/internal/job"
	"github.com/suraj371k/Job-Portal/internal/logger"
	"github.com/suraj371k/Job-Portal/internal/mailer"
	"github.com/suraj371k/Job-Portal/internal/metrics"
	"github.com/suraj371k/Job-Portal/internal/middleware"
	"github.com/suraj371k/Job-Portal/internal/profile"
	"github.com/suraj371k/Job-Portal/internal/repository"
	"github.com/suraj371k/Job-Portal/internal/security"
	"github.com/suraj371k/Job-Portal/internal/storage"
)

// Init はアプリケーションの初期化を行う。
// .envがあれば読み込み、環境変数からConfigを読み込み、
// JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. .envファイルの読み込み（なければ環境変数のみ）
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env file")
	}

	// 3. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "4000"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	accountRepo := repository.NewPostgresAccountRepo(db)
	employerRepo := repository.NewPostgresEmployerProfileRepo(db)
	jobRepo := repository.NewPostgresJobRepo(db)
	appRepo := repository.NewPostgresApplicationRepo(db)
	profileRepo := repository.NewPostgresUserProfileRepo(db)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. 周辺サービスの初期化
	sanitizer := security.NewContentSanitizer()

	var m mailer.Mailer = mailer.NopMailer{}
	if cfg.EmailUser != "" && cfg.EmailPass != "" {
		m = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			From:     cfg.EmailFrom,
		})
		slog.Info("smtp mailer enabled", slog.String("host", cfg.SMTPHost))
	} else {
		slog.Warn("smtp credentials not set, application emails disabled")
	}

	var resumes storage.ResumeStorage = storage.DisabledResumeStorage{}
	if cfg.S3Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3, err := storage.NewS3ResumeStorage(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("failed to initialize resume storage: %w", err)
		}
		resumes = s3
		slog.Info("resume storage enabled", slog.String("bucket", cfg.S3Bucket))
	} else {
		slog.Warn("object storage not configured, resume upload disabled")
	}

	// 5. ドメインサービスの初期化
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenMaxAge)
	oauthProvider := auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	authService := auth.NewService(oauthProvider, accountRepo, tokens, cfg.SessionSecret)

	employerService := employer.NewService(employerRepo)
	jobService := job.NewService(jobRepo, sanitizer, collector)
	applicationService := application.NewService(appRepo, jobRepo, employerRepo, m, collector)
	profileService := profile.NewService(profileRepo, resumes)

	// 6. レート制限の初期化
	limiter := middleware.NewLoginRateLimiter(middleware.LoginRateLimiterConfig{
		Limit:           cfg.LoginRateLimit,
		Window:          cfg.LoginRateWindow,
		CleanupInterval: 5 * time.Minute,
	})
	defer limiter.Stop()

	// 7. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		TokenVerifier:     tokens,
		AccountFinder:     accountRepo,
		EmployerFinder:    employerRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		LoginRateLimiter:  limiter,

		Collector: collector,
		Gatherer:  registry,
		DB:        db,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			FrontendURL:  cfg.FrontendURL,
			CookieDomain: cfg.CookieDomain,
			CookieSecure: cfg.CookieSecure,
			TokenMaxAge:  cfg.TokenMaxAge,
		},

		EmployerService:    employerService,
		JobService:         jobService,
		ApplicationService: applicationService,
		ProfileService:     profileService,
	})

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
