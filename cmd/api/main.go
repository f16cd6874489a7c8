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
	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/auth"
	"github.com/BruksfildServices01/crime-detection/internal/config"
	dbpkg "github.com/BruksfildServices01/crime-detection/internal/db"
	"github.com/BruksfildServices01/crime-detection/internal/detection"
	"github.com/BruksfildServices01/crime-detection/internal/inference"
	infraRepo "github.com/BruksfildServices01/crime-detection/internal/infra/repository"
	"github.com/BruksfildServices01/crime-detection/internal/logger"
	"github.com/BruksfildServices01/crime-detection/internal/metrics"
	"github.com/BruksfildServices01/crime-detection/internal/middleware"
	"github.com/BruksfildServices01/crime-detection/internal/notify"
	"github.com/BruksfildServices01/crime-detection/internal/routes"
	"github.com/BruksfildServices01/crime-detection/internal/storage"
	"github.com/BruksfildServices01/crime-detection/internal/validators"
	"github.com/BruksfildServices01/crime-detection/internal/video"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	gin.SetMode(gin.ReleaseMode)
	if err := validators.Register(); err != nil {
		log.Fatal("registering validators", zap.Error(err))
	}

	ctx := context.Background()

	// tracing is optional
	if cfg.OTLPEndpoint != "" {
		tp, err := middleware.InitTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing disabled", zap.Error(err))
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(flushCtx)
			}()
		}
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}

	var blacklist auth.Blacklist = auth.NopBlacklist{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		blacklist = auth.NewRedisBlacklist(rdb)
	} else {
		log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	// the service cannot run without a model
	model, err := inference.NewClient(ctx, cfg.InferenceURL, cfg.InferenceTimeout)
	if err != nil {
		log.Fatal("inference backend unavailable", zap.String("url", cfg.InferenceURL), zap.Error(err))
	}
	log.Info("model loaded", zap.String("model", model.Model()))

	m := metrics.New()
	detector := detection.NewService(
		model,
		video.NewDecoder(cfg.FFmpegPath, detection.ProcessingSize),
		m,
		log,
	)

	var archive storage.Archive
	if a := storage.NewS3Archive(cfg); a != nil {
		archive = a
	}

	dispatcher := notify.NewDispatcher(infraRepo.NewNotificationGormRepository(db), log)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Dependencies{
		DB:         db,
		Config:     cfg,
		Log:        log,
		Tokens:     auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Blacklist:  blacklist,
		Dispatcher: dispatcher,
		Detection:  detector,
		Archive:    archive,
		Metrics:    m,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	dispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server stopped")
}
