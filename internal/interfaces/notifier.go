package interfaces

import (
	"context"
	"time"
)

// Notification is an operator-facing message about a failed step.
type Notification struct {
	ID        string            `json:"id"`
	Subject   string            `json:"subject"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationLog keeps recent notifications for later retrieval.
type NotificationLog interface {
	RecentNotifications(ctx context.Context, limit int64) ([]Notification, error)
}

// Locker guards a run against concurrent execution across processes.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}
