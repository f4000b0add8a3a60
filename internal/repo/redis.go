package repo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"SkyVault/config"
	"SkyVault/internal/notify"
	"SkyVault/model"
)

var Redis *redis.Client

// InitRedis initializes the Redis client.
func InitRedis() {
	RedisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.AppConfig.RedisHost, config.AppConfig.RedisPort),
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("init redis fail", err)
	}
	log.Println("init redis success")
	Redis = RedisClient
}

// EnableKeyspaceNotifications enables Redis expired-key events.
func EnableKeyspaceNotifications(ctx context.Context) error {
	if Redis == nil {
		return errors.New("redis not initialized")
	}
	return Redis.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err()
}

// ListenRedisExpired listens for Redis expired events.
func ListenRedisExpired(ctx context.Context, rdb *redis.Client, ready chan<- struct{}) {
	pubsub := rdb.Subscribe(ctx, "__keyevent@0__:expired")
	_, err := pubsub.Receive(ctx)
	if err != nil {
		log.Fatalf("subscribe failed: %v", err)
	}
	close(ready)
	ch := pubsub.Channel()

	for msg := range ch {
		key := msg.Payload
		handleExpiredKey(ctx, key)
	}
}

// handleExpiredKey dispatches expired-key handlers.
func handleExpiredKey(ctx context.Context, key string) {
	switch {
	case strings.HasPrefix(key, "share:"):
		handleShareExpired(ctx, key)
	default:
	}
}

// handleShareExpired announces a share crossing its expiry. The row is kept:
// expiry is a time-based state, and resolution must report it as expired
// rather than missing. The feed event lets UIs drop the link immediately.
func handleShareExpired(ctx context.Context, key string) {
	token := strings.TrimPrefix(key, "share:")

	var share model.ShareLink
	if err := Db.Where("token = ?", token).First(&share).Error; err != nil {
		return
	}
	notify.Publish(ctx, notify.TableShares, notify.EventExpired, share.OwnerID, share.FileID)
	log.Println("share expired:", token)
}
