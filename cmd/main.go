package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/config"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/handler"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/lock"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/notify"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/infra/token"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/scheduler"
)

// Version is set at build time with -ldflags.
var Version = "dev"

const (
	serviceName     = "reminder-dispatch"
	shutdownTimeout = 30 * time.Second
)

type closableNotifier interface {
	app.Notifier
	Close() error
}

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	if err := cfg.Notify.Validate(); err != nil {
		slog.Error("notify configuration error", "error", err)
		return 1
	}

	ctx := context.Background()

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", "error", err)
		return 1
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush telemetry", "error", err)
		}
	}()

	db, err := initDatabase(cfg.Database, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get underlying sql.DB", "error", err)
		return 1
	}

	tokens, err := token.NewUnsubscribeTokens(cfg.Unsubscribe.Secret, cfg.Unsubscribe.TokenTTL)
	if err != nil {
		slog.Error("failed to initialize unsubscribe tokens", "error", err)
		return 1
	}

	notifier, err := initNotifier(ctx, cfg, notify.NewLinks(tokens, cfg.Unsubscribe.BaseURL))
	if err != nil {
		slog.Error("failed to initialize notifier", "error", err)
		return 1
	}

	defer func() {
		if err := notifier.Close(); err != nil {
			slog.Warn("failed to close notifier", "error", err)
		}
	}()

	sweepMetrics, err := metrics.NewSweepMetrics(obs.Metrics.Meter())
	if err != nil {
		slog.Error("failed to create sweep metrics", "error", err)
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics(obs.Metrics.Meter())
	if err != nil {
		slog.Error("failed to create http metrics", "error", err)
		return 1
	}

	reminderRepo := repository.NewReminderRepository(db)

	dispatcher := app.NewDispatcher(reminderRepo, notifier, app.DispatcherConfig{
		Window:      cfg.Scheduler.DueWindow,
		Concurrency: cfg.Scheduler.Concurrency,
		SendTimeout: cfg.Scheduler.SendTimeout,
		Fallback:    cfg.Scheduler.DefaultTimezone,
		Observer:    sweepMetrics,
	})

	driverCfg := scheduler.DriverConfig{
		Interval: cfg.Scheduler.Interval,
		Overrun:  sweepMetrics,
		Logger:   logging.NewCronLogger(slog.Default()),
	}

	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", "error", err)
			}
		}()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err, "addr", cfg.Redis.Addr)
			return 1
		}

		driverCfg.Locker = lock.NewRedisLocker(redisClient, lock.DefaultKey, cfg.Redis.LockTTL)
		slog.Info("distributed sweep lock enabled", "addr", cfg.Redis.Addr)
	}

	driver := scheduler.NewDriver(dispatcher, driverCfg)

	reminderUseCase := app.NewReminderUseCase(reminderRepo, tokens)

	if err := handler.RegisterValidators(); err != nil {
		slog.Error("failed to register validators", "error", err)
		return 1
	}

	router := setupRouter(
		handler.NewReminderHandler(reminderUseCase),
		handler.NewSweepHandler(driver),
		httpMetrics,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Scheduler.Enabled {
		driver.Start()
		slog.Info("sweep driver started",
			"interval", driver.Interval(),
			"due_window", cfg.Scheduler.DueWindow.Duration(),
			"default_timezone", cfg.Scheduler.DefaultTimezone.String(),
		)
	} else {
		slog.Info("sweep driver disabled, sweeps run only on POST /api/v1/sweeps")
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", cfg.Server.Address(), "version", Version)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// In-flight sweeps finish before the notifier and the database go away.
	if err := driver.Stop(shutdownCtx); err != nil {
		slog.Error("failed to stop sweep driver", "error", err)
		exitCode = 1
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
		exitCode = 1
	}

	if err := sqlDB.Close(); err != nil {
		slog.Error("failed to close database connection", "error", err)
	}

	slog.Info("server exited", "exit_code", exitCode)

	return exitCode
}

func initDatabase(cfg config.DatabaseConfig, level slog.Level) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(cfg.SlowQueryThreshold, level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	reminderHandler *handler.ReminderHandler,
	sweepHandler *handler.SweepHandler,
	httpMetrics *metrics.HTTPMetrics,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/ping"},
		Module:      logging.ModuleReminder,
		JobRoutes:   map[string]string{"/api/v1/sweeps": "reminder.sweep"},
		TracerName:  serviceName,
		HTTPMetrics: httpMetrics,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	reminderHandler.RegisterRoutes(v1)
	sweepHandler.RegisterRoutes(v1)

	return router
}

func observabilityConfig(cfg *config.Config, env logging.Environment, projectID string) observability.Config {
	name := os.Getenv("K_SERVICE")
	if name == "" {
		name = serviceName
	}

	return observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     name,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.ModuleSweep,
		LogLevel:      logging.ParseLevel(cfg.Log.Level),
	}
}
