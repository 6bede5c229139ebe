package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/scribbly/scribbly/internal/config"
	"github.com/scribbly/scribbly/internal/httpserver"
	"github.com/scribbly/scribbly/internal/httpserver/deps"
	"github.com/scribbly/scribbly/internal/identity"
	"github.com/scribbly/scribbly/internal/logger"
	"github.com/scribbly/scribbly/internal/notes"
	"github.com/scribbly/scribbly/internal/redis"
	"github.com/scribbly/scribbly/internal/sources/seed"
	redisstore "github.com/scribbly/scribbly/internal/store/redis"
	"github.com/scribbly/scribbly/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	signal      *identity.Signal
	notes       *notes.Store
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Remote note service backed by Redis
	remote := redisstore.NewStore(redisClient)

	// Seed the store if a seed file is configured
	if cfg.SeedFile != "" {
		importer := seed.NewImporter(remote, loggerClient)
		if err := importer.Import(context.Background(), cfg.SeedFile, cfg.SeedOwner); err != nil {
			loggerClient.Warn("seed import failed, continuing without seed data",
				logger.Error(err))
		}
	}

	// Identity signal and the note cache bound to it
	identitySignal := identity.NewSignal()
	noteStore := notes.NewStore(remote, identitySignal, loggerClient, cfg.AutosaveDelay)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		RedisClient: redisClient,
		Signal:      identitySignal,
		Notes:       noteStore,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		signal:      identitySignal,
		notes:       noteStore,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Scribbly v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Scribbly %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Watch identity changes: every switch reloads the cache, sign-out clears it.
	a.notes.Bind(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop accepting autosaves before the server drains.
	a.notes.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Scribbly stopped cleanly")
	return nil
}
