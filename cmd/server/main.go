package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mybabyhq/site-server-go/internal/config"
	"github.com/mybabyhq/site-server-go/internal/database"
	"github.com/mybabyhq/site-server-go/internal/handler"
	"github.com/mybabyhq/site-server-go/internal/jobs"
	"github.com/mybabyhq/site-server-go/internal/middleware"
	"github.com/mybabyhq/site-server-go/internal/repository"
	"github.com/mybabyhq/site-server-go/internal/service"
	"github.com/mybabyhq/site-server-go/internal/upload"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var (
		sessionRepo    repository.AdminSessionRepository
		brandingRepo   repository.BrandingRepository
		clientLogoRepo repository.ClientLogoRepository
		contactRepo    repository.ContactSubmissionRepository
		onboardingRepo repository.OnboardingRepository
	)

	if cfg.UseMemoryStorage() {
		log.Warn().Msg("DATABASE_URL not set: using in-memory storage (state is lost on restart)")
		sessionRepo = repository.NewMemoryAdminSessionRepository()
		brandingRepo = repository.NewMemoryBrandingRepository()
		clientLogoRepo = repository.NewMemoryClientLogoRepository()
		contactRepo = repository.NewMemoryContactSubmissionRepository()
		onboardingRepo = repository.NewMemoryOnboardingRepository()
	} else {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
		if err := db.Ping(ctx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("failed to ping database")
		}
		cancel()

		if err := db.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to run schema migration")
		}
		log.Info().Msg("database connected")

		sessionRepo = repository.NewAdminSessionRepository(db.DB)
		brandingRepo = repository.NewBrandingRepository(db)
		clientLogoRepo = repository.NewClientLogoRepository(db.DB)
		contactRepo = repository.NewContactSubmissionRepository(db.DB)
		onboardingRepo = repository.NewOnboardingRepository(db.DB)
	}

	uploadStore, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}

	authService := service.NewAuthService(sessionRepo, cfg)
	brandingService := service.NewBrandingService(brandingRepo, clientLogoRepo, uploadStore)
	intakeService := service.NewIntakeService(contactRepo, onboardingRepo, uploadStore)

	sessionGate := middleware.NewAdminSessionMiddleware(sessionRepo)

	r := handler.NewRouter(handler.RouterDeps{
		Auth:         authService,
		Branding:     brandingService,
		Intake:       intakeService,
		SessionGate:  sessionGate,
		UploadDir:    uploadStore.Dir(),
		IsProduction: cfg.IsProduction(),
	})

	cleanupJob := jobs.NewCleanupJob(sessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: config.ServerReadTimeout,
		IdleTimeout: config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
