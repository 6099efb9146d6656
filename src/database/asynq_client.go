package database

import (
	"github.com/hibiken/asynq"

	"Backend-Schoolhub/src/logger"
)

var AsynqClient *asynq.Client

// InitAsynq สร้าง client สำหรับ enqueue งาน recompute เมื่อมี Redis เท่านั้น
func InitAsynq() *asynq.Client {
	log := logger.Module("asynq")
	if RedisClient == nil || RedisURI == "" {
		log.Warn("⚠️ Redis not available, summary recompute jobs are disabled")
		return nil
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: RedisURI})
	log.WithField("redis", RedisURI).Info("✅ Asynq client initialized")
	return AsynqClient
}

func CloseAsynq() error {
	if AsynqClient == nil {
		return nil
	}
	return AsynqClient.Close()
}
