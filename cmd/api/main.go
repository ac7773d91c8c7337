package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/config"
	"github.com/matchiq/predictions-api/internal/handlers"
	"github.com/matchiq/predictions-api/internal/logic"
	"github.com/matchiq/predictions-api/internal/provider"
	"github.com/matchiq/predictions-api/internal/store"
	"github.com/matchiq/predictions-api/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("failed to create postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("failed to ping postgres", "error", err)
	}

	// ClickHouse
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("invalid clickhouse url", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("failed to connect to clickhouse", "error", err)
	}
	defer ch.Close()

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("invalid redis url", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Fatalw("failed to ping redis", "error", err)
	}

	// Audit pipeline
	auditPool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Logger:        logger,
	})
	auditPool.Start(ctx)

	// External data providers, behind a Redis read-through cache
	apiClient := provider.New(provider.Config{
		FootballBaseURL: cfg.FootballAPIURL,
		FootballAPIKey:  cfg.FootballAPIKey,
		WeatherBaseURL:  cfg.WeatherAPIURL,
		WeatherAPIKey:   cfg.WeatherAPIKey,
		NewsBaseURL:     cfg.NewsAPIURL,
		NewsAPIKey:      cfg.NewsAPIKey,
		Season:          cfg.Season,
		Timeout:         cfg.ProviderTimeout,
		RequestsPerSec:  cfg.ProviderRateLimit,
		MaxRetryTime:    cfg.ProviderRetryTime,
	}, logger)
	dataProvider := provider.NewCachingProvider(apiClient, rdb, logger)

	// Storage and services
	db := store.NewPostgresStore(pg, logger)
	locker := store.NewRedisGenerationLock(rdb, logger)
	predictionSvc := logic.NewPredictionService(logic.PredictionServiceConfig{
		Matches:  db,
		Store:    db,
		Provider: dataProvider,
		Locker:   locker,
		Audit:    auditPool,
		Logger:   logger,
	})

	h := handlers.New(handlers.Config{
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      rdb,
		Logger:     logger,
		Matches:    db,
		Prediction: predictionSvc,
		Audit:      auditPool,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/countries", h.ListCountries)
		r.Get("/countries/{code}/teams", h.ListTeams)
		r.Get("/matches", h.ListMatches)
		r.Post("/matches", h.CreateMatch)
		r.Get("/matches/{matchId}", h.GetMatch)
		r.Get("/matches/{matchId}/prediction", h.GetPrediction)
		r.Post("/matches/{matchId}/prediction", h.GeneratePrediction)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("server shutdown failed", "error", err)
	}
	auditPool.Stop()

	sugar.Info("shutdown complete")
}
