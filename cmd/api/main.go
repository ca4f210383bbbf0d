package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/monisha2608/HRMBackend/internal/app"
	"github.com/monisha2608/HRMBackend/internal/config"
	"github.com/monisha2608/HRMBackend/internal/database"
	apphttp "github.com/monisha2608/HRMBackend/internal/http"
	"github.com/monisha2608/HRMBackend/internal/http/handlers"
	"github.com/monisha2608/HRMBackend/internal/http/metrics"
	httpmw "github.com/monisha2608/HRMBackend/internal/http/middleware"
	"github.com/monisha2608/HRMBackend/internal/http/response"
	"github.com/monisha2608/HRMBackend/internal/mail"
	"github.com/monisha2608/HRMBackend/internal/observability"
	"github.com/monisha2608/HRMBackend/internal/repository/postgres"
	"github.com/monisha2608/HRMBackend/internal/scan"
	"github.com/monisha2608/HRMBackend/internal/security"
	"github.com/monisha2608/HRMBackend/internal/shortlist"
	"github.com/monisha2608/HRMBackend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.NewLogger()
	defer func() { _ = logger.Sync() }()

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	onboardingRepo := postgres.NewOnboardingRepository(db)
	successionRepo := postgres.NewSuccessionRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	scorer := shortlist.NewScorer(shortlist.Config{
		Keywords:  cfg.ShortlistKeywords,
		Threshold: cfg.ShortlistThreshold,
	})
	mailer := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Pass:     cfg.SMTPPass,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	})
	resumeStore := storage.NewLocalResumeStore(cfg.UploadDir)

	applicationService := app.NewApplicationService(applicationRepo, jobRepo, scorer, mailer, resumeStore, scan.NoopScanner{}, logger, cfg.ResumeMaxBytes)
	jobService := app.NewJobService(jobRepo)
	onboardingService := app.NewOnboardingService(onboardingRepo, applicationRepo)
	successionService := app.NewSuccessionService(successionRepo, applicationRepo, jobRepo)
	reportService := app.NewReportService(applicationRepo, jobRepo)

	// Redis shares the apply rate limit across instances; without it each
	// instance falls back to its own in-memory buckets.
	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService),
		OnboardingHandler:  handlers.NewOnboardingHandler(onboardingService),
		SuccessionHandler:  handlers.NewSuccessionHandler(successionService),
		ReportHandler:      handlers.NewReportHandler(reportService),
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		RateLimiter:        limiter,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
		UploadMaxBytes:     cfg.ResumeMaxBytes,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
