package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/kiyer/argoquery/internal/compiler"
	"github.com/kiyer/argoquery/internal/core/config"
	"github.com/kiyer/argoquery/internal/core/observability"
	"github.com/kiyer/argoquery/internal/core/server"
	"github.com/kiyer/argoquery/internal/executor"
	"github.com/kiyer/argoquery/internal/gazetteer"
	"github.com/kiyer/argoquery/internal/hotness/expdecay"
	"github.com/kiyer/argoquery/internal/intent"
	"github.com/kiyer/argoquery/internal/invalidation/kafkaconsumer"
	"github.com/kiyer/argoquery/internal/logger"
	"github.com/kiyer/argoquery/internal/respcache"
	"github.com/kiyer/argoquery/internal/schema"
	"github.com/kiyer/argoquery/internal/service"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

// readiness reports ready once the schema snapshot is loaded and the
// database answers a ping.
type readiness struct {
	provider *schema.Provider
	pool     *pgxpool.Pool
}

func (r readiness) Readiness() (bool, string) {
	if r.provider.Snapshot().Len() == 0 {
		return false, "schema snapshot not loaded"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.pool.Ping(ctx); err != nil {
		return false, "database unreachable"
	}
	return true, ""
}

func run() int {
	_ = godotenv.Load()

	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "apiserver",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting apiserver",
		"addr", cfg.Addr,
		"version", Version,
		"table", cfg.Table,
		"cache_driver", cfg.CacheDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		appLog.Error("database pool setup failed", "err", err)
		return 1
	}
	defer pool.Close()

	provider := schema.NewProvider(appLog, pool, cfg.Table, cfg.SchemaRefreshInterval)
	if err := provider.Refresh(ctx); err != nil {
		appLog.Warn("initial schema refresh failed, will retry in background", "err", err)
	}
	provider.Start(ctx)
	defer provider.Stop()

	gaz := gazetteer.New()
	comp := compiler.New(cfg.Table, gaz.KnownNames())
	exec := executor.New(appLog, pool)

	var cache respcache.Interface
	switch cfg.CacheDriver {
	case "redis":
		cache, err = respcache.NewRedis(ctx, cfg.RedisAddr, cfg.CacheOpTimeout)
		if err != nil {
			appLog.Error("redis cache setup failed", "err", err)
			return 1
		}
	case "none":
		cache = respcache.Noop{}
	default:
		cache, err = respcache.NewLRU(cfg.CacheSize)
		if err != nil {
			appLog.Error("lru cache setup failed", "err", err)
			return 1
		}
	}

	hot := expdecay.New(cfg.HotHalfLife)

	var llm intent.Producer
	var narrator intent.Narrator
	if cfg.LLM.APIKey != "" {
		client := intent.NewLLMClient(appLog, cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout)
		llm = client
		narrator = client
	} else {
		appLog.Info("no llm api key configured, using regex drafts only")
	}
	fallback := intent.NewFallbackProducer(gaz)

	svc := service.New(appLog, gaz, comp, exec, provider, llm, fallback, narrator, cache, hot, service.Config{
		Table:        cfg.Table,
		TTL:          cfg.CacheTTL,
		HotTTL:       cfg.CacheHotTTL,
		HotThreshold: cfg.HotThreshold,
		H3Res:        cfg.H3Res,
	})

	if cfg.Invalidation.Enabled && cfg.Invalidation.Driver == "kafka" {
		consumer := kafkaconsumer.New(
			kafkaconsumer.NewConfig(cfg.Invalidation.Brokers, cfg.Invalidation.Topic, cfg.Invalidation.GroupID),
			appLog, cache, provider)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				appLog.Error("invalidation consumer exited", "err", err)
			}
		}()
	}

	if err := server.Run(ctx, cfg, appLog, svc, readiness{provider: provider, pool: pool}); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}
