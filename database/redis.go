package database

import (
	"log"

	"github.com/ALuiell/Cinema/config"
	"github.com/redis/go-redis/v9"
)

// Redis backs the availability cache and the seat-change channel. It stays
// nil when REDIS_ADDR is unset; callers treat that as "cache disabled".
var Redis *redis.Client

func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, availability cache disabled")
		return
	}
	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
	})
}
