// Package cache keeps computed availability responses in Redis, keyed per
// space and date. Reservation events and schedule changes invalidate the
// affected keys; a miss simply recomputes from Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/condoflow/booking-service/internal/domain"
)

// ErrCacheMiss is returned when no entry exists for the key.
var ErrCacheMiss = errors.New("availability.cache: miss")

// Logger is the leveled logger consumed by the cache.
type Logger interface {
	Warn(format string, v ...interface{})
}

// AvailabilityCache stores serialized slot listings.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// New creates a cache with the given entry TTL.
func New(client *redis.Client, ttl time.Duration, logger Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, logger: logger}
}

func slotsKey(spaceID int64, date time.Time) string {
	return fmt.Sprintf("slots:%d:%s", spaceID, date.Format(domain.DateFormat))
}

// Get loads the cached slot listing for a space/date into dest.
func (c *AvailabilityCache) Get(ctx context.Context, spaceID int64, date time.Time, dest interface{}) error {
	payload, err := c.client.Get(ctx, slotsKey(spaceID, date)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("availability.cache: get: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("availability.cache: decode: %w", err)
	}
	return nil
}

// Set stores the slot listing for a space/date.
func (c *AvailabilityCache) Set(ctx context.Context, spaceID int64, date time.Time, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("availability.cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, slotsKey(spaceID, date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability.cache: set: %w", err)
	}
	return nil
}

// InvalidateSpace drops every cached date for a space. Used after
// schedule or block changes, where the affected dates are open-ended.
func (c *AvailabilityCache) InvalidateSpace(ctx context.Context, spaceID int64) error {
	pattern := fmt.Sprintf("slots:%d:*", spaceID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("availability.cache: scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("availability.cache: del: %w", err)
	}
	return nil
}

// InvalidateRange drops the cached dates a reservation interval touches.
func (c *AvailabilityCache) InvalidateRange(ctx context.Context, spaceID int64, interval domain.TimeRange) error {
	var keys []string
	for day := startOfDay(interval.Start); day.Before(interval.End); day = day.AddDate(0, 0, 1) {
		keys = append(keys, slotsKey(spaceID, day))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("availability.cache: del: %w", err)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Invalidator is the dispatcher subscriber that keeps the cache honest:
// any reservation event means that space's availability changed.
type Invalidator struct {
	cache *AvailabilityCache
}

// NewInvalidator creates the cache-invalidation subscriber.
func NewInvalidator(cache *AvailabilityCache) *Invalidator {
	return &Invalidator{cache: cache}
}

// Name implements events.Subscriber.
func (i *Invalidator) Name() string {
	return "availability-cache"
}

// Handle drops the affected keys for the event's space. Events that
// carry the booked interval invalidate only the touched dates; the rest
// fall back to dropping the whole space.
func (i *Invalidator) Handle(ctx context.Context, event domain.Event) error {
	type intervalCarrier interface {
		Interval() domain.TimeRange
	}
	if carrier, ok := event.(intervalCarrier); ok {
		return i.cache.InvalidateRange(ctx, event.SpaceID(), carrier.Interval())
	}
	return i.cache.InvalidateSpace(ctx, event.SpaceID())
}
