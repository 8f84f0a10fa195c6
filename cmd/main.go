// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/edusync/internal/cache"
	"github.com/Shivanand-hulikatti/edusync/internal/config"
	"github.com/Shivanand-hulikatti/edusync/internal/database"
	"github.com/Shivanand-hulikatti/edusync/internal/handler"
	"github.com/Shivanand-hulikatti/edusync/internal/logger"
	"github.com/Shivanand-hulikatti/edusync/internal/repository"
	"github.com/Shivanand-hulikatti/edusync/internal/scheduler"
	"github.com/Shivanand-hulikatti/edusync/internal/service"
	"github.com/Shivanand-hulikatti/edusync/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// ── 1. Connect to PostgreSQL and migrate ──────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	log.Info("connected to PostgreSQL", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))

	if err := database.Migrate(pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// ── 2. Snapshot cache ─────────────────────────────────────────────────
	snapshotCache, err := newSnapshotCache(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = snapshotCache.Close() }()

	// ── 3. Wire up layers ─────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	snapshots := cache.NewSnapshots(snapshotCache, cfg.SnapshotTTL)
	eventSvc := service.NewEventService(eventRepo, regRepo, profileRepo, snapshots, log.Named("events"))
	authSvc := service.NewAuthService(userRepo, profileRepo, snapshots, log.Named("auth"), 0)
	announcementSvc := service.NewAnnouncementService(announcementRepo, profileRepo, log.Named("announcements"))

	sessions := session.New(pool, cfg.SessionLifetime, cfg.IsDevelopment())

	router := handler.NewRouter(handler.RouterConfig{
		Events:         handler.NewEventHandler(eventSvc, cfg.Location(), log),
		Auth:           handler.NewAuthHandler(authSvc, sessions, log),
		Announcements:  handler.NewAnnouncementHandler(announcementSvc, log),
		Sessions:       sessions,
		SignInLimiter:  handler.NewIPRateLimiter(cfg.SignInRate, cfg.SignInBurst),
		Log:            log.Named("http"),
		AllowedOrigins: cfg.AllowedOrigins,
		CSRFKey:        []byte(cfg.SessionSecret)[:config.MinSessionSecretLength],
		TrustProxy:     cfg.TrustProxy,
	})

	// ── 4. Status scheduler ───────────────────────────────────────────────
	sched := scheduler.New(eventRepo, cfg.Location(), log.Named("scheduler"))
	if _, err := sched.Tick(ctx); err != nil {
		log.Warn("initial status update failed", zap.Error(err))
	}
	if err := sched.Start(scheduler.EveryMinute); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer sched.Stop()

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// newSnapshotCache connects to Redis when configured and falls back to
// process memory otherwise.
func newSnapshotCache(cfg *config.Config, log *zap.Logger) (cache.Cache, error) {
	if !cfg.UseRedis() {
		log.Info("using in-memory snapshot cache")
		return cache.NewMemoryCache(cfg.SnapshotTTL), nil
	}

	opts := cache.DefaultRedisOptions()
	opts.URL = cfg.RedisURL
	opts.Prefix = cfg.CachePrefix
	opts.DefaultTTL = cfg.SnapshotTTL
	c, err := cache.NewRedisCache(opts)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	log.Info("using Redis snapshot cache", zap.String("prefix", cfg.CachePrefix))
	return c, nil
}
