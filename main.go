// Package main provides the main entry point for the Breakline tournament directory
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tannermartz/breakline/app/handlers"
	"github.com/tannermartz/breakline/app/middleware"
	"github.com/tannermartz/breakline/app/router"
	"github.com/tannermartz/breakline/app/scheduler"
	"github.com/tannermartz/breakline/app/services"
	businessflow "github.com/tannermartz/breakline/business_flow"
	"github.com/tannermartz/breakline/config"
	"github.com/tannermartz/breakline/logx"
	"github.com/tannermartz/breakline/repository"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.Config
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.Init(&logx.Config{
		Level:      cfg.Logging.Level,
		Format:     logx.Format(cfg.Logging.Format),
		Component:  "breakline",
		WithSource: cfg.Logging.WithSource,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAge,
	})

	logx.Info("starting breakline", "version", cfg.Version, "environment", cfg.Environment)

	app, err := initializeApplication(cfg)
	if err != nil {
		logx.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.router.Start(cfg.Server.Address()); err != nil {
			logx.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	logx.Info("shutting down gracefully")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		logx.Error("error during shutdown", "error", err)
	}

	logx.Info("server stopped")
}

// initializeDatabase opens the postgres connection with pooling configured
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logx.Info("database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return db, nil
}

// initializeCache connects the redis client and verifies connectivity.
// A disabled cache returns a nil client; flows fall back to the database.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logx.Info("redis connection established", "db", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor periodically pings redis to surface connectivity
// problems in the logs. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					logx.Warn("redis healthcheck failed", "error", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeNotificationService wires the configured push and email providers
func initializeNotificationService(cfg *config.Config) services.NotificationService {
	var emailProvider services.EmailProvider
	switch cfg.Email.Provider {
	case "smtp":
		emailProvider = services.NewSMTPEmailProvider(
			cfg.Email.Host,
			cfg.Email.Port,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.FromEmail,
		)
	default:
		emailProvider = services.NewMockEmailProvider()
	}

	return services.NewNotificationService(services.NewMockPushProvider(), emailProvider)
}

// initializeApplication wires repositories, services, flows, handlers, and the router
func initializeApplication(cfg *config.Config) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval))
	}

	// Repositories
	playerRepo := repository.NewPlayerRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	tournamentRepo := repository.NewTournamentRepository(db)
	alertRepo := repository.NewSearchAlertRepository(db)
	matchRepo := repository.NewAlertMatchRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	sessionRepo := repository.NewPlayerSessionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Services
	notificationService := initializeNotificationService(cfg)

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Business flows; matching first since other flows dispatch it
	matchingFlow := businessflow.NewAlertMatchingFlow(alertRepo, matchRepo, playerRepo, notificationService, &cfg.Cache, rc)
	signupFlow := businessflow.NewSignupFlow(playerRepo, sessionRepo, auditRepo, tokenService, db)
	loginFlow := businessflow.NewLoginFlow(playerRepo, sessionRepo, auditRepo, tokenService, &cfg.Cache, rc, db)
	tournamentFlow := businessflow.NewTournamentFlow(tournamentRepo, venueRepo, playerRepo, auditRepo, matchingFlow, db)
	alertFlow := businessflow.NewSearchAlertFlow(alertRepo, matchRepo, tournamentRepo, playerRepo, auditRepo, matchingFlow, db)
	favoriteFlow := businessflow.NewFavoriteFlow(favoriteRepo, tournamentRepo, playerRepo, auditRepo, db)
	venueFlow := businessflow.NewVenueFlow(venueRepo, db)
	adminFlow := businessflow.NewAdminFlow(playerRepo, tournamentRepo, venueRepo, sessionRepo, auditRepo, tokenService, matchingFlow, db)

	// Background maintenance
	sessionCleanup := scheduler.NewSessionCleanupScheduler(sessionRepo, cfg.Security.SessionCleanupInterval)
	stopFuncs = append(stopFuncs, sessionCleanup.Start(context.Background()))

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	r := router.NewFiberRouter(router.Handlers{
		Auth:        handlers.NewAuthHandler(signupFlow, loginFlow),
		Tournament:  handlers.NewTournamentHandler(tournamentFlow),
		SearchAlert: handlers.NewSearchAlertHandler(alertFlow),
		Favorite:    handlers.NewFavoriteHandler(favoriteFlow),
		Venue:       handlers.NewVenueHandler(venueFlow),
		Admin:       handlers.NewAdminHandler(adminFlow),
	}, authMiddleware, cfg.Security.AllowedOrigins)

	return &Application{
		router:    r,
		config:    cfg,
		server:    r.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
