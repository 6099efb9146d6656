package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"Backend-Schoolhub/src/config"
	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/jobs"
	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/services/fees"
)

// worker ประมวลผลงาน asynq (recompute class fee summary)
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ invalid configuration: %v", err)
	}
	log := logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Error connecting to the database: %v", err)
	}
	db := client.Database(cfg.MongoDB)

	if cfg.RedisURI == "" {
		log.Fatal("❌ REDIS_URI is required for the worker")
	}
	if err := database.InitRedis(ctx, cfg.RedisURI); err != nil {
		log.Fatal(err)
	}

	refresher := fees.NewSummaryRefresher(
		database.NewLedgerRepository(client, db),
		database.NewPersonRepository(db),
		database.NewRedisSummaryCache(database.RedisClient, cfg.SummaryCacheTTL),
		logger.Module("worker"),
	)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisURI},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{"default": 1},
			Logger:      log,
		},
	)
	mux := asynq.NewServeMux()
	jobs.RegisterHandlers(mux, refresher)

	// Run จัดการ SIGINT/SIGTERM และ shutdown เอง
	log.Info("✅ asynq worker started")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("❌ worker stopped: %v", err)
	}
	_ = database.CloseRedis()
	_ = database.Disconnect(context.Background())
}
