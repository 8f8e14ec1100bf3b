package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/reeloomstudios/postpilot/internal/adapter/repo"
	"github.com/reeloomstudios/postpilot/internal/analytics"
	"github.com/reeloomstudios/postpilot/internal/drafts"
	"github.com/reeloomstudios/postpilot/internal/http/handlers"
	httpapi "github.com/reeloomstudios/postpilot/internal/http/httpapi"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/infra/credentials"
	"github.com/reeloomstudios/postpilot/internal/linkedin"
	"github.com/reeloomstudios/postpilot/internal/pipeline"
	"github.com/reeloomstudios/postpilot/internal/providers/content"
	"github.com/reeloomstudios/postpilot/internal/providers/genai"
	imageprovider "github.com/reeloomstudios/postpilot/internal/providers/image"
	"github.com/reeloomstudios/postpilot/internal/schedule"
	"github.com/reeloomstudios/postpilot/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	draftRepo := repo.NewDraftRepository(sqlRunner)
	scheduleRepo := repo.NewScheduleRepository(sqlRunner)
	historyRepo := repo.NewHistoryRepository(sqlRunner)
	accountRepo := repo.NewAccountRepository(sqlRunner)

	// The Gemini key can come from the environment or from the credentials
	// store (set via the geminikey command).
	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		stored, err := credentials.NewStore(sqlRunner).GeminiAPIKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("credentials store lookup failed")
		}
		apiKey = stored
	}

	genaiClient, err := genai.NewClient(genai.Options{
		APIKey:     apiKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("gemini client init failed")
	}

	fileStore, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("file store init failed")
	}

	analyticsSvc := analytics.NewService(historyRepo, logger)
	contentGen := content.NewGenerator(genaiClient)
	imageGen := imageprovider.NewGenerator(genaiClient, fileStore, logger)
	executor := pipeline.New(logger, analyticsSvc, contentGen)
	draftSvc := drafts.NewService(executor, draftRepo, logger)

	linkedinSvc := linkedin.NewService(accountRepo, linkedin.Options{
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURI:  cfg.LinkedInRedirectURI,
	}, logger)

	scheduler := schedule.NewScheduler(logger)
	orchestrator := schedule.NewOrchestrator(draftRepo, scheduleRepo, historyRepo, linkedinSvc, scheduler, logger, nil)

	// Timers do not survive a restart; re-arm whatever is still pending.
	if err := orchestrator.RestorePending(ctx); err != nil {
		logger.Error().Err(err).Msg("restore pending schedules failed")
	}

	if cfg.AutopilotCron != "" {
		autopilot := schedule.NewAutopilot(draftSvc, orchestrator, accountRepo, logger)
		if err := autopilot.Register(scheduler, cfg.AutopilotCron); err != nil {
			logger.Fatal().Err(err).Str("spec", cfg.AutopilotCron).Msg("autopilot cron registration failed")
		}
		logger.Info().Str("spec", cfg.AutopilotCron).Msg("autopilot enabled")
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := &handlers.App{
		Config:    cfg,
		Logger:    logger,
		Drafts:    draftRepo,
		Schedules: scheduleRepo,
		History:   historyRepo,
		Accounts:  accountRepo,
		Generator: draftSvc,
		Publisher: orchestrator,
		Analytics: analyticsSvc,
		Images:    imageGen,
		LinkedIn:  linkedinSvc,
	}
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
