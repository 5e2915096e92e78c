package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
)

type RedisStore struct {
	client          *redis.Client
	maxItems        int64
	notificationTTL time.Duration
}

var (
	_ interfaces.Notifier        = (*RedisStore)(nil)
	_ interfaces.NotificationLog = (*RedisStore)(nil)
	_ interfaces.Locker          = (*RedisStore)(nil)
)

func NewRedisStore(cfg config.RedisConfig, notification config.NotificationConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client:          client,
		maxItems:        int64(notification.MaxItems),
		notificationTTL: notification.TTL,
	}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) GetClient() *redis.Client {
	return s.client
}

// Helper methods for common operations
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Exists(ctx context.Context, keys ...string) (int64, error) {
	return s.client.Exists(ctx, keys...).Result()
}

func (s *RedisStore) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return s.client.Expire(ctx, key, expiration).Err()
}

// Notification storage
const (
	notificationListKey  = "summarize:notifications"
	notificationDedupKey = "summarize:notifications:dedup"
	notificationDedupTTL = 5 * time.Minute
	lockKeyPrefix        = "summarize:lock:"
)

func notificationDedup(n interfaces.Notification) string {
	return fmt.Sprintf("%s:%s:%s:%d", notificationDedupKey, n.Subject, n.Message, n.Timestamp)
}

// Notify stores a notification at the head of the capped list. Identical
// notifications within a few minutes are dropped.
func (s *RedisStore) Notify(ctx context.Context, n interfaces.Notification) error {
	dedupKey := notificationDedup(n)
	exists, err := s.Exists(ctx, dedupKey)
	if err != nil {
		return fmt.Errorf("failed to check dedup: %w", err)
	}
	if exists > 0 {
		return nil
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := s.client.LPush(ctx, notificationListKey, data).Err(); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	if err := s.client.LTrim(ctx, notificationListKey, 0, s.maxItems-1).Err(); err != nil {
		return fmt.Errorf("failed to trim notification list: %w", err)
	}
	if err := s.Set(ctx, dedupKey, "1", notificationDedupTTL); err != nil {
		return fmt.Errorf("failed to set dedup key: %w", err)
	}
	if err := s.Expire(ctx, notificationListKey, s.notificationTTL); err != nil {
		log.Printf("[RedisStore] Warning: failed to set list TTL: %v", err)
	}
	return nil
}

// RecentNotifications returns the newest notifications first.
func (s *RedisStore) RecentNotifications(ctx context.Context, limit int64) ([]interfaces.Notification, error) {
	if limit <= 0 || limit > s.maxItems {
		limit = s.maxItems
	}

	results, err := s.client.LRange(ctx, notificationListKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]interfaces.Notification, 0, len(results))
	for _, result := range results {
		var n interfaces.Notification
		if err := json.Unmarshal([]byte(result), &n); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// TryLock takes key for ttl unless another holder has it.
func (s *RedisStore) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKeyPrefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) Unlock(ctx context.Context, key string) error {
	if err := s.Del(ctx, lockKeyPrefix+key); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}
