package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/mesa-scheduler/internal/audit"
	"github.com/BruksfildServices01/mesa-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/mesa-scheduler/internal/db"
	"github.com/BruksfildServices01/mesa-scheduler/internal/events"
	"github.com/BruksfildServices01/mesa-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/mesa-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/mesa-scheduler/internal/logging"
	"github.com/BruksfildServices01/mesa-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mesa-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mesa-scheduler/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}

	infra := routes.Infra{
		DB:      db,
		Config:  cfg,
		Logger:  logger,
		Limiter: middleware.NewIPRateLimiter(cfg.RateLimit),
	}

	// --------------------------------------------------
	// Redis (cache de horários)
	// --------------------------------------------------
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	switch {
	case cfg.Redis.SlotCacheTTL <= 0:
		logger.Info().Msg("slot cache disabled")
	case rdb.Ping(ctx).Err() != nil:
		logger.Warn().Str("addr", cfg.Redis.Addr).Msg("redis unreachable, slot cache disabled")
	default:
		infra.Cache = cache.NewSlotCache(rdb, cfg.Redis.SlotCacheTTL)
	}

	// --------------------------------------------------
	// Auditoria + eventos
	// --------------------------------------------------
	sinks := []audit.Sink{audit.New(db)}

	if cfg.Kafka.Enabled() {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		sinks = append(sinks, publisher)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka events enabled")
	}

	dispatcher := audit.NewDispatcher(logger, sinks...)
	infra.Audit = dispatcher

	// --------------------------------------------------
	// S3 (exportação de agenda)
	// --------------------------------------------------
	if cfg.S3.Enabled() {
		infra.Storage = storage.NewS3Storage(cfg.S3)
		logger.Info().Str("bucket", cfg.S3.Bucket).Msg("agenda export enabled")
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, infra)

	go cleanupLimiter(ctx, infra.Limiter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("audit flush failed")
	}
}

func cleanupLimiter(ctx context.Context, l *middleware.IPRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
