package database

import (
	"context"
	"log"

	"timestamper-api/config"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when REDIS_ADDR is not configured. Callers treat a nil client
// as "no cache".
var Redis *redis.Client

func InitRedis() {
	if config.REDIS_ADDR == "" {
		log.Println("REDIS_ADDR not set, running without cache")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatal("❌ Failed to connect to redis:", err)
	}

	Redis = rdb
	log.Println("Connected to Redis")
}
