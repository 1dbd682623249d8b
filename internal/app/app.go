package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/BalajiAXG/BookMark-Repo/internal/auth"
	"github.com/BalajiAXG/BookMark-Repo/internal/config"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver"
	"github.com/BalajiAXG/BookMark-Repo/internal/httpserver/deps"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/realtime"
	"github.com/BalajiAXG/BookMark-Repo/internal/redis"
	"github.com/BalajiAXG/BookMark-Repo/internal/scheduler"
	"github.com/BalajiAXG/BookMark-Repo/internal/seed"
	"github.com/BalajiAXG/BookMark-Repo/internal/session"
	redisstore "github.com/BalajiAXG/BookMark-Repo/internal/store/redis"
	"github.com/BalajiAXG/BookMark-Repo/internal/version"
)

// hubChannel adapts the realtime hub to the sync layer's Channel.
type hubChannel struct {
	hub *realtime.Hub
}

func (c hubChannel) Subscribe(ctx context.Context, userID string, fn func(realtime.Event)) (session.Subscription, error) {
	sub, err := c.hub.Subscribe(ctx, userID, fn)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *redisstore.Store
	janitor     *scheduler.SessionJanitor
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

	// Change-event hub: mutations publish here, live views subscribe
	hub := realtime.NewHub(redisClient, loggerClient)

	// Persistent bookmark store, publishing through the hub
	store := redisstore.NewStore(redisClient, hub, loggerClient)

	// Session lookup against records the identity provider wrote
	sessions := auth.NewRedisProvider(redisClient)

	// Expired-session janitor
	janitor := scheduler.NewSessionJanitor(sessions, loggerClient, cfg.JanitorInterval, nil)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TrustProxy:      cfg.TrustProxy,
		Sessions:        sessions,
		Remote:          store,
		Counter:         store,
		Channel:         hubChannel{hub: hub},
		Ping:            func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       store,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Markd v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Markd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed import (if a seed file is configured)
	if a.cfg.SeedFile != "" {
		importer := seed.NewImporter(a.cfg.SeedFile, a.store, a.logger)
		if _, err := importer.Import(ctx, a.cfg.SeedUser); err != nil {
			a.logger.Warn("seed import failed, continuing without it",
				logger.String("file", a.cfg.SeedFile),
				logger.Error(err))
		}
	}

	// Start expired-session janitor
	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session janitor: %w", err)
	}
	a.logger.Info("session janitor started",
		logger.Duration("interval", a.cfg.JanitorInterval))

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

	// Stop janitor
	a.janitor.Stop()

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

	a.logger.Info("✅ Markd stopped cleanly")
	return nil
}
