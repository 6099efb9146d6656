package database

import (
	"context"
	"fmt"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
	RedisLock   *redislock.Client
)

// InitRedis เชื่อมต่อ Redis และสร้าง redislock client; uri ว่าง = ไม่ใช้ Redis
func InitRedis(ctx context.Context, uri string) error {
	if uri == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     uri, // เช่น localhost:6379
		Password: "",  // ถ้าไม่มีรหัสผ่าน
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("❌ Failed to connect Redis: %w", err)
	}

	RedisClient = rdb
	RedisURI = uri
	RedisLock = redislock.New(rdb)
	return nil
}

func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}
