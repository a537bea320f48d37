// Main entry point for the HLS playlist proxy server
//
// Responsibilities:
// - Parse command line flags
// - Load and validate configuration
// - Set up signal handling for graceful shutdown
// - Initialize logging and metrics
// - Start the server
// - Wait for termination signals

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/streamforge/hlsplaylist/internal/api"
	"github.com/streamforge/hlsplaylist/internal/cache"
	"github.com/streamforge/hlsplaylist/internal/config"
	"github.com/streamforge/hlsplaylist/internal/jwt"
	"github.com/streamforge/hlsplaylist/internal/middleware"
	"github.com/streamforge/hlsplaylist/internal/proxy"
	"github.com/streamforge/hlsplaylist/internal/redis"
	"github.com/streamforge/hlsplaylist/internal/server"
	"github.com/streamforge/hlsplaylist/internal/telemetry"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	metrics := telemetry.NewMetrics(cfg.Metrics.Namespace)

	bootID := uuid.New().String()
	logger = logger.WithField("boot_id", bootID)
	logger.Info("starting hlsproxy", "version", version, "addr", cfg.Server.Addr)

	var appCache cache.Cache
	if cfg.Cache.Enabled {
		opts := cache.Options{
			MaxSize:   cfg.Cache.MaxSize,
			ShardSize: cfg.Cache.ShardSize,
			UseRedis:  cfg.Redis.Enabled,
		}
		if cfg.Redis.Enabled {
			opts.RedisConfig = &cache.RedisOptions{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: cfg.Redis.DialTimeout,
				KeyPrefix:   "hlsplaylist:cache:",
			}
		}
		appCache = cache.NewCache(opts)
	} else {
		appCache = cache.NewMemory()
	}

	var tracker *redis.Tracker
	if cfg.Redis.Enabled {
		client := redis.NewClient(&cfg.Redis)
		health := redis.NewHealth(client, 3)
		if err := health.Check(context.Background()); err != nil {
			logger.Warn("redis unreachable at startup", "error", err)
		}
		tracker = redis.NewTracker(client, &cfg.Redis, logger)
		tracker.StartCleanupWorker(context.Background())
	}

	proxyHandler := proxy.NewHandler(proxy.HandlerOptions{
		Config:       cfg,
		Cache:        appCache,
		Logger:       logger,
		Metrics:      metrics,
		RedisTracker: tracker,
	})

	jwtExtractor := jwt.NewExtractor(&cfg.JWT)
	jwtValidator := jwt.NewValidator(&cfg.JWT, appCache)

	router := api.NewRouter()
	router.RegisterHealthCheck()
	router.RegisterVersionEndpoint(version, buildTime, gitCommit)
	router.RegisterPlaylistEndpoints(proxyHandler.Fetch)
	router.Handle("/status", api.StatusHandler())
	router.Handle("/config", api.ConfigHandler(func() interface{} { return redactedConfig(cfg) }))
	router.RegisterCacheEndpoints(
		func() interface{} { return appCache.Stats() },
		func() error { appCache.Clear(); return nil },
		middleware.JWTAuth(jwtExtractor, jwtValidator),
	)
	if tracker != nil {
		router.RegisterPlayersEndpoint(func() interface{} {
			return map[string]interface{}{"active": tracker.GetActivePlayers()}
		})
	}
	if cfg.Metrics.Enabled {
		router.RegisterPrometheusMetrics(metrics.Handler())
	}
	router.Handle("/", middleware.NewChain(
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.Metrics(metrics),
	).Then(proxyHandler))

	srv := server.New(server.FromConfig(&cfg.Server, router.Handler()), logger)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	if err := server.WaitForSignal(srv); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// redactedConfig returns a copy of cfg with secrets cleared, safe to
// expose on the unauthenticated /config endpoint.
func redactedConfig(cfg *config.Config) *config.Config {
	redacted := *cfg
	if redacted.JWT.Secret != "" {
		redacted.JWT.Secret = "***redacted***"
	}
	if redacted.Redis.Password != "" {
		redacted.Redis.Password = "***redacted***"
	}
	return &redacted
}
