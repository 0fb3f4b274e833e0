package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scheduling-assistant/config"
	_ "scheduling-assistant/docs" // Swagger docs
	"scheduling-assistant/internal/chat/assist"
	"scheduling-assistant/internal/chat/classifier"
	chatDelivery "scheduling-assistant/internal/chat/delivery/http"
	"scheduling-assistant/internal/chat/session"
	chatUC "scheduling-assistant/internal/chat/usecase"
	"scheduling-assistant/internal/httpserver"
	"scheduling-assistant/internal/middleware"
	"scheduling-assistant/internal/task/repository/taskapi"
	taskUC "scheduling-assistant/internal/task/usecase"
	"scheduling-assistant/pkg/dateparse"
	"scheduling-assistant/pkg/gcalendar"
	"scheduling-assistant/pkg/gemini"
	"scheduling-assistant/pkg/log"
)

// @title       Scheduling Assistant API
// @description Conversational scheduling decision engine with deterministic date resolution, a Gemini-backed assist, and an explicit propose/confirm gate.
// @version     1
// @host        localhost:8080
// @schemes     http
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

	logger.Info(ctx, "Starting Scheduling Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Task service URL: %s", cfg.TaskService.URL)

	// 3. Deterministic extraction
	timezone := cfg.Scheduler.Timezone
	extractor, exErr := dateparse.NewExtractor(timezone)
	if exErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, exErr)
		timezone = "UTC"
		extractor, _ = dateparse.NewExtractor(timezone)
	}
	cls := classifier.New(extractor)

	// 4. Generative assist (optional)
	var assistAdapter assist.Adapter
	if cfg.Assist.Enabled && cfg.Gemini.APIKey != "" {
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
		if cfg.Gemini.Model != "" {
			geminiClient.SetModel(cfg.Gemini.Model)
		}
		if cfg.Gemini.APIURL != "" {
			geminiClient.SetAPIURL(cfg.Gemini.APIURL)
		}
		assistAdapter = assist.NewGeminiAdapter(logger, geminiClient, assist.Config{
			Timeout:       cfg.Assist.Timeout,
			RetryAttempts: cfg.Assist.RetryAttempts,
			HistoryLimit:  cfg.Assist.HistoryLimit,
		})
		logger.Info(ctx, "Generative assist enabled")
	} else {
		logger.Warn(ctx, "Generative assist disabled, running deterministic-only")
	}

	// 5. Task domain
	taskClient := taskapi.NewClient(cfg.TaskService.URL, cfg.TaskService.AccessToken)
	taskRepo := taskapi.New(taskClient, logger)

	// Google Calendar client (optional)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	var calendar taskUC.CalendarClient
	if calendarClient != nil {
		calendar = calendarClient
	}
	tasks := taskUC.New(logger, taskRepo, calendar, cfg.GoogleCalendar.CalendarID, timezone)

	// 6. Chat domain
	store, err := session.NewMemoryStore(session.DefaultMaxUsers)
	if err != nil {
		logger.Error(ctx, "Failed to initialize session store: ", err)
		return
	}

	loc, _ := time.LoadLocation(timezone)
	chatEngine := chatUC.New(logger, store, cls, extractor, assistAdapter, tasks, chatUC.SlotConfig{
		Location:           loc,
		WeekdayDefaultHour: cfg.Scheduler.WeekdayDefaultHour,
		WeekendDefaultHour: cfg.Scheduler.WeekendDefaultHour,
		DefaultDuration:    time.Duration(cfg.Scheduler.DefaultDurationMinutes) * time.Minute,
	}, nil)
	chatHandler := chatDelivery.New(logger, chatEngine)

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  middleware.New(logger, cfg),
		ChatHandler: chatHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
