package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const datesPrefix = "avail:dates:"

// datesEntry is only valid for the day it was computed on, since the horizon
// moves with "today".
type datesEntry struct {
	Day   string   `json:"day"`
	Dates []string `json:"dates"`
}

// RedisDatesCache caches each tutor's available-date list. Errors are logged
// and treated as misses; the cache never fails a request.
type RedisDatesCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisDatesCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisDatesCache {
	return &RedisDatesCache{client: client, ttl: ttl, log: log.Named("dates_cache")}
}

func datesKey(tutorID string) string {
	return datesPrefix + tutorID
}

func (c *RedisDatesCache) Get(ctx context.Context, tutorID, day string) ([]string, bool) {
	data, err := c.client.Get(ctx, datesKey(tutorID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("dates cache get failed", zap.String("tutor_id", tutorID), zap.Error(err))
		return nil, false
	}
	return decodeDates(data, day)
}

func (c *RedisDatesCache) Set(ctx context.Context, tutorID, day string, dates []string) {
	b, err := json.Marshal(datesEntry{Day: day, Dates: dates})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, datesKey(tutorID), b, c.ttl).Err(); err != nil {
		c.log.Warn("dates cache set failed", zap.String("tutor_id", tutorID), zap.Error(err))
	}
}

func (c *RedisDatesCache) Invalidate(ctx context.Context, tutorID string) {
	if err := c.client.Del(ctx, datesKey(tutorID)).Err(); err != nil {
		c.log.Warn("dates cache invalidate failed", zap.String("tutor_id", tutorID), zap.Error(err))
	}
}

func decodeDates(data []byte, day string) ([]string, bool) {
	var entry datesEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Day != day {
		return nil, false
	}
	if entry.Dates == nil {
		entry.Dates = []string{}
	}
	return entry.Dates, true
}
