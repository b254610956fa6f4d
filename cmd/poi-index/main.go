package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/backend/esclient"
	"github.com/munin-search/autocomplete/internal/config"
	"github.com/munin-search/autocomplete/internal/pkg/logger"
	"github.com/munin-search/autocomplete/internal/poi"
	"github.com/munin-search/autocomplete/internal/poi/queue"
	"github.com/munin-search/autocomplete/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting POI enrichment pipeline worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Pool.ConsumerGroup),
		zap.String("stream", cfg.Pool.StreamName),
		zap.Int("concurrency", cfg.Pool.Concurrency),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected")

	backendClient := esclient.New(cfg.Backend.BaseURL, log)

	types := poi.NewTypeDictionary(poi.DefaultTypes())
	pipeline := poi.New(backendClient, types, cfg.Ranking.ToSettings(), cfg.Pool.Concurrency, log)

	rawQueue := queue.New(redisClient, cfg.Pool.StreamName, log)
	pipelineWorker := poi.NewPipelineWorker(pipeline, rawQueue, cfg.Pool.ConsumerGroup, "poi-index-1", log)

	manager := worker.NewWorkerManager(log)
	manager.Register(pipelineWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("POI enrichment pipeline worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("POI enrichment pipeline worker shutdown complete")
}
