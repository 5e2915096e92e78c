package engine

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
)

// Notification subjects.
const (
	SubjectFetchError = "ゆとシートデータ取得エラー"
	SubjectParseError = "キャラクターシート解析エラー"
)

// MultiNotifier delivers to every target in order. Failures are logged and
// the first one is returned once all targets ran.
type MultiNotifier []interfaces.Notifier

func (m MultiNotifier) Notify(ctx context.Context, n interfaces.Notification) error {
	var first error
	for _, target := range m {
		if target == nil {
			continue
		}
		if err := target.Notify(ctx, n); err != nil {
			log.Printf("[Notifier] Warning: delivery failed: %v", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n interfaces.Notification) error {
	log.Printf("[Notify] %s: %s %v", n.Subject, n.Message, n.Fields)
	return nil
}

func newNotification(subject, message string, fields map[string]string) interfaces.Notification {
	return interfaces.Notification{
		ID:        uuid.NewString(),
		Subject:   subject,
		Message:   message,
		Fields:    fields,
		Timestamp: time.Now().UnixNano(),
	}
}

func notify(ctx context.Context, notifier interfaces.Notifier, n interfaces.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		log.Printf("[Engine] Warning: failed to notify %q: %v", n.Subject, err)
	}
}
