package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"timesheet-service/internal/storage"
)

// Invalidator signals the presentation layer that a user's calendar view is
// stale. The signal is fire-and-forget: failures are logged, never surfaced,
// and no business rule depends on it.
type Invalidator interface {
	InvalidateCalendar(userID uuid.UUID, day time.Time)
}

// RedisInvalidator drops the cached calendar views for the affected user
// and month.
type RedisInvalidator struct {
	client *storage.RedisClient
}

func NewRedisInvalidator(client *storage.RedisClient) *RedisInvalidator {
	return &RedisInvalidator{client: client}
}

func (i *RedisInvalidator) InvalidateCalendar(userID uuid.UUID, day time.Time) {
	pattern := fmt.Sprintf("calendar:%s:%s*", userID, day.Format("2006-01"))
	keys, err := i.client.Keys(pattern)
	if err != nil {
		log.Printf("Calendar invalidation lookup failed: %v", err)
		return
	}
	if err := i.client.Delete(keys...); err != nil {
		log.Printf("Calendar invalidation failed: %v", err)
	}
}

// NoopInvalidator is used when Redis is unavailable; the service keeps
// working without cached calendar views.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateCalendar(uuid.UUID, time.Time) {}
