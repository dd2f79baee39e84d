package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"role-profile/internal/config"
	apihttp "role-profile/internal/http"
	"role-profile/internal/service"
	"role-profile/internal/weights"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	if cfg.IsDevelopment() {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	tables, err := loadTables(cfg)
	if err != nil {
		logger.Fatal("load scoring tables", zap.Error(err))
	}
	logger.Info("scoring tables loaded",
		zap.String("version", tables.Version),
		zap.Int("questions", tables.QuestionCount),
		zap.Int("roles", len(tables.Roles)),
		zap.Int("competencies", len(tables.Competencies)),
	)

	var cache service.ResultCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, result cache disabled", zap.Error(err))
		} else {
			cache = service.NewRedisResultCache(redisClient, cfg.ResultCacheTTL, logger)
		}
		cancel()
	}

	pipeline := service.NewScoringPipeline(tables, cache, logger)
	scoringHandler := apihttp.NewScoringHandler(logger, pipeline)
	router := apihttp.NewRouter(logger, apihttp.CORSOptions{
		AllowedOrigins: cfg.CORSOrigins,
		AllowAll:       cfg.IsDevelopment(),
	}, scoringHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadTables(cfg *config.Config) (*weights.Tables, error) {
	if cfg.WeightsFile != "" {
		return weights.LoadFile(cfg.WeightsFile)
	}
	return weights.Default()
}
