package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ghostdesk/internal/config"
	"github.com/MrSnakeDoc/ghostdesk/internal/credentials"
	"github.com/MrSnakeDoc/ghostdesk/internal/events"
	"github.com/MrSnakeDoc/ghostdesk/internal/finder"
	"github.com/MrSnakeDoc/ghostdesk/internal/hostbridge"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver"
	"github.com/MrSnakeDoc/ghostdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/metrics"
	"github.com/MrSnakeDoc/ghostdesk/internal/redis"
	"github.com/MrSnakeDoc/ghostdesk/internal/registry"
	"github.com/MrSnakeDoc/ghostdesk/internal/scheduler"
	"github.com/MrSnakeDoc/ghostdesk/internal/screen"
	"github.com/MrSnakeDoc/ghostdesk/internal/sources/homepage"
	redisstore "github.com/MrSnakeDoc/ghostdesk/internal/store/redis"
	"github.com/MrSnakeDoc/ghostdesk/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	publisher   *hostbridge.Publisher
	listener    *hostbridge.Listener
	controller  *screen.Controller
	seeder      *scheduler.SeedImporter
	refresher   *scheduler.NameRefresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(promRegistry)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.Connect(context.Background(), redis.OptionsFromConfig(cfg), loggerClient.Named("redis"))
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	publisher := hostbridge.NewPublisher(redisClient, loggerClient.Named("hostbridge"))
	store := redisstore.NewStore(redisClient, publisher)
	creds := credentials.Open(cfg.KeyringService, loggerClient.Named("keychain"), recorder)
	names := homepage.NewFetcher(cfg.NameFetchTimeout, cfg.NameFetchPerMinute)

	blogs := registry.New(store, creds, names, loggerClient.Named("registry"), recorder)
	controller := screen.NewController(blogs, publisher, cfg.Platform, loggerClient.Named("screen"), recorder)
	find := finder.New(publisher, controller, loggerClient.Named("finder"))
	router := events.NewRouter(controller, blogs, publisher, loggerClient.Named("events"), recorder)
	listener := hostbridge.NewListener(redisClient, router, loggerClient.Named("hostbridge"))

	// Manual name refresh trigger, fed by the API
	nameRefresh := make(chan struct{}, 1)
	refresher := scheduler.NewNameRefresher(
		blogs,
		controller,
		loggerClient.Named("scheduler"),
		cfg.NameRefreshInterval,
		nameRefresh,
	)
	seeder := scheduler.NewSeedImporter(cfg.SeedFile, blogs, loggerClient.Named("seed"))

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:           loggerClient.Named("http"),
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		APIRatePerSecond: cfg.APIRatePerSecond,
		APIBurst:         cfg.APIBurst,
		RedisClient:      redisClient,
		Store:            store,
		Registry:         blogs,
		Screen:           controller,
		Events:           router,
		Credentials:      creds,
		Finder:           find,
		Gatherer:         promRegistry,
		NameRefresh:      nameRefresh,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		publisher:   publisher,
		listener:    listener,
		controller:  controller,
		seeder:      seeder,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Ghostdesk v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("Ghostdesk %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load blogs, importing the seed file into an empty store
	imported, err := a.seeder.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to load blogs: %w", err)
	}
	if imported > 0 {
		a.logger.Info("seed file imported", logger.Int("blogs", imported))
	}

	if err := a.controller.Setup(ctx); err != nil {
		return fmt.Errorf("failed to set up screen: %w", err)
	}

	if err := a.listener.Start(ctx); err != nil {
		return fmt.Errorf("failed to start host bridge: %w", err)
	}

	if err := a.publisher.NotifyReady(ctx); err != nil {
		a.logger.Warn("failed to notify host", logger.Error(err))
	}

	a.refresher.Start(ctx)
	a.logger.Info("name refresher started",
		logger.Duration("interval", a.cfg.NameRefreshInterval))

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
		a.refresher.Stop()
		a.listener.Stop()
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.listener.Stop()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	_ = a.logger.Sync()
	a.logger.Info("✅ Ghostdesk stopped cleanly")
	return nil
}
