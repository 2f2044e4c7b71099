package app

import (
	"context"
	"log/slog"
	"time"

	"RecruitIntel/internal/config"
	"RecruitIntel/internal/infrastructure/scheduler"
	"RecruitIntel/internal/infrastructure/sheets"
	"RecruitIntel/internal/infrastructure/source"
	"RecruitIntel/internal/infrastructure/storage"
	"RecruitIntel/internal/infrastructure/telegram"
	"RecruitIntel/internal/logging"
	"RecruitIntel/internal/ports"
	"RecruitIntel/internal/scanner"
	"RecruitIntel/internal/server"
	"RecruitIntel/internal/usecase"
)

// Application wires config to adapters, the pipeline, the scheduler, and
// the webhook server.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler ports.Scheduler
	server    *server.Server
	archive   *storage.PostgresArchive
}

// New builds a runnable application instance. Optional adapters (archive,
// sheets, telegram) are wired only when their configuration is present.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := scanner.NewRegistry()
	registry.Register(source.NewSimulatedScanner())
	registry.Register(source.NewFixtureScanner())

	articleSource := source.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))

	store, err := storage.NewFileStore(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}

	var archive *storage.PostgresArchive
	if cfg.Database.DSN != "" {
		archive, err = storage.OpenPostgresArchive(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
	}

	var uploader ports.SheetUploader
	if cfg.Sheets.CredentialsFile != "" {
		uploader = sheets.NewUploader(cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	deps := usecase.PipelineDeps{
		Source:    articleSource,
		Snapshots: store,
		Files:     store,
		Uploader:  uploader,
		Notifier:  notifier,
		Weights:   cfg.Weights,
		DailyTop:  cfg.Data.DailyTop,
		Logger:    baseLogger.With("component", "pipeline"),
	}
	if archive != nil {
		deps.Archive = archive
	}
	pipeline := usecase.NewPipeline(deps)

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		scheduler: scheduler.NewClockScheduler(
			cfg.Scheduler.Location(),
			cfg.Scheduler.DailyHour,
			cfg.Scheduler.WeeklyHour,
		),
		server:  server.New(cfg.Server.Port, cfg.Server.Secret, pipeline, baseLogger.With("component", "server")),
		archive: archive,
	}, nil
}

// Run starts the scheduled jobs and blocks on the webhook server.
func (a *Application) Run(ctx context.Context) error {
	daily := func(t time.Time) {
		if _, err := a.pipeline.RunDailyCollection(ctx, t); err != nil {
			a.logger.Error("daily collection failed", "error", err)
			return
		}
		if _, err := a.pipeline.RunSheetsUpload(ctx); err != nil {
			a.logger.Warn("sheets upload skipped", "error", err)
		}
	}
	weekly := func(t time.Time) {
		if _, err := a.pipeline.RunWeeklyContent(ctx, t); err != nil {
			a.logger.Error("weekly content failed", "error", err)
		}
	}

	if err := a.scheduler.Start(ctx, daily, weekly); err != nil {
		return err
	}
	defer func() {
		_ = a.scheduler.Stop(ctx)
		if a.archive != nil {
			_ = a.archive.Close()
		}
	}()

	return a.server.Run()
}
