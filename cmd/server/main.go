package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/visits-api/internal/config"
	"github.com/iliyamo/visits-api/internal/handler"
	"github.com/iliyamo/visits-api/internal/logger"
	"github.com/iliyamo/visits-api/internal/metrics"
	"github.com/iliyamo/visits-api/internal/queue"
	"github.com/iliyamo/visits-api/internal/router"
	"github.com/iliyamo/visits-api/internal/visits"
)

func main() {
	started := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	zl, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := router.Deps{Config: cfg, Logger: zl}

	if cfg.RateLimit.Enabled {
		deps.Redis = config.NewRedisClient(cfg.Redis)
		if deps.Redis != nil {
			defer func() { _ = deps.Redis.Close() }()
			zl.Info("rate limiting backed by redis", zap.String("addr", cfg.Redis.Addr))
		} else {
			zl.Info("rate limiting in memory", zap.Bool("redis_configured", cfg.Redis.Addr != ""))
		}
	}

	var events queue.Publisher
	if cfg.Events.Enabled {
		events = queue.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue, zl)
	}
	if cfg.Events.Consumer {
		consumer := queue.NewConsumer(cfg.Events.URL, cfg.Events.Queue, cfg.Events.LogDir, zl)
		go func() { _ = consumer.Run(ctx) }()
	}

	counter := visits.NewCounter()
	deps.API = handler.NewAPIHandler(counter, cfg.Hostname, started, events, zl)
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New(counter)
	}
	e := router.New(deps)

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
