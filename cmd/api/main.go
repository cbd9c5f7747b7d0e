package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"assessment-planner/config"
	assessmentHTTP "assessment-planner/internal/assessment/delivery/http"
	assessmentRepo "assessment-planner/internal/assessment/repository/postgres"
	"assessment-planner/internal/assessment/usecase"
	"assessment-planner/internal/httpserver"
	"assessment-planner/pkg/datemath"
	"assessment-planner/pkg/log"
	"assessment-planner/pkg/openrouter"
	"assessment-planner/pkg/studycal"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Assessment Planner...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. OpenRouter LLM client. A missing API key is fatal here, before any request.
	llmClient, err := openrouter.New(openrouter.Config{
		APIKey:   cfg.OpenRouter.APIKey,
		Model:    cfg.OpenRouter.Model,
		BaseURL:  cfg.OpenRouter.BaseURL,
		Referer:  cfg.OpenRouter.Referer,
		AppTitle: cfg.OpenRouter.AppTitle,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize OpenRouter client: ", err)
		return
	}

	// 4. DateMath parser
	timezone := cfg.Import.Timezone
	dateMathParser, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		timezone = "UTC"
		dateMathParser, _ = datemath.NewParser(timezone)
	}

	// 5. Postgres repository
	pool, err := assessmentRepo.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error(ctx, "Failed to connect to database: ", err)
		return
	}
	defer pool.Close()
	repo := assessmentRepo.New(pool, logger)

	// 6. Study-session calendar client (optional)
	var scheduler studycal.Scheduler
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calClient, calErr := studycal.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			scheduler = calClient
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 7. Assessment UseCase + HTTP handler
	assessmentUC := usecase.New(logger, llmClient, repo, scheduler, dateMathParser, timezone, nil)
	assessmentHandler := assessmentHTTP.New(logger, assessmentUC)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:            logger,
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		AssessmentHandler: assessmentHandler,
		ImportRatePerMin:  cfg.Import.RateLimitPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
