package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/analysis"
	"github.com/huynhanx03/codelens/pkg/common/cache"
	"github.com/huynhanx03/codelens/pkg/common/cache/ttl"
	"github.com/huynhanx03/codelens/pkg/dashboard"
	"github.com/huynhanx03/codelens/pkg/database/redis"
	"github.com/huynhanx03/codelens/pkg/events"
	"github.com/huynhanx03/codelens/pkg/logger"
	"github.com/huynhanx03/codelens/pkg/metrics"
	"github.com/huynhanx03/codelens/pkg/repository"
	"github.com/huynhanx03/codelens/pkg/server"
	"github.com/huynhanx03/codelens/pkg/service"
	"github.com/huynhanx03/codelens/pkg/settings"
	"github.com/huynhanx03/codelens/pkg/timer"
	"github.com/huynhanx03/codelens/pkg/unique"
)

const idPrefix = "analysis_"

func newServeCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := settings.Load(*cfgFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *settings.Config) error {
	log := logger.New(cfg.Logger)
	defer func() { _ = log.Sync() }()

	var clock timer.Timer = timer.System()
	if cfg.Cache.ClockResolution > 0 {
		cached := timer.NewCachedTimer(cfg.Cache.ClockResolution)
		defer cached.Stop()
		clock = cached
	}

	node, err := unique.NewSnowflakeNode(cfg.SnowflakeNode, clock)
	if err != nil {
		return err
	}

	cacheLog := log.Named("cache").Logger
	reports := ttl.New(cacheConfig("reports", cfg.Cache, clock, cacheLog, analysis.Report.Clone))
	defer reports.Close()
	listings := ttl.New(cacheConfig("listings", cfg.Cache, clock, cacheLog, repository.Page.Clone))
	defer listings.Close()
	dashboards := ttl.New(cacheConfig("dashboards", cfg.Cache, clock, cacheLog, dashboard.Stats.Clone))
	defer dashboards.Close()

	var (
		repo     repository.Repository        = repository.NewMemoryRepository()
		projects repository.ProjectRepository = repository.NewMemoryProjectRepository()
		remote   cache.CacheEngine
	)
	if cfg.Repository.Driver == settings.RepositoryRedis {
		engine, err := redis.NewConnection(cfg.Redis)
		if err != nil {
			return err
		}
		defer engine.Close()
		repo = repository.NewRedisRepository(engine.Client())
		projects = repository.NewRedisProjectRepository(engine.Client())
		remote = engine
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kp, err := events.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			return err
		}
		publisher = kp
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close publisher", zap.Error(err))
		}
	}()

	svc := service.New(service.Deps{
		Repo:       repo,
		Projects:   projects,
		IDs:        unique.NewPrefixedIDs(node, idPrefix),
		Reports:    reports,
		Listings:   listings,
		Dashboards: dashboards,
		Remote:     remote,
		Publisher:  publisher,
		Clock:      clock,
		Logger:     log.Named("service").Logger,
		Cache:      cfg.Cache,
	})

	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics()
	if err := httpMetrics.Register(reg); err != nil {
		return err
	}
	reg.MustRegister(
		metrics.NewCacheCollector(reports, listings, dashboards),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := server.NewRouter(server.RouterDeps{
		Service:     svc,
		Logger:      log.Named("http").Logger,
		Gatherer:    reg,
		HTTPMetrics: httpMetrics,
	})

	log.Info("starting codelens",
		zap.String("version", version),
		zap.String("repository", cfg.Repository.Driver),
		zap.Bool("kafka", cfg.Kafka.Enabled),
	)
	return server.New(cfg.Server, router, log.Logger).Run(ctx)
}

func cacheConfig[V any](name string, cfg settings.Cache, clock timer.Timer, log *zap.Logger, clone func(V) V) ttl.Config[V] {
	return ttl.Config[V]{
		Name:          name,
		DefaultTTL:    cfg.DefaultTTL,
		SweepInterval: cfg.SweepInterval,
		SingleFlight:  cfg.SingleFlight,
		Timer:         clock,
		Logger:        log,
		Clone:         clone,
	}
}
