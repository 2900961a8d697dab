// Package cache keeps seat map payloads in Redis so hover re-renders do not
// hit the flight API.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultTTL = 300 * time.Second
	keyPrefix  = "seatmaps:"
)

type SeatMapCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSeatMapCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SeatMapCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SeatMapCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func key(flightOrderID string) string {
	return keyPrefix + flightOrderID
}

// Get reports a miss for absent keys and for any Redis or decoding failure;
// the cache is never a reason to fail a render.
func (c *SeatMapCache) Get(ctx context.Context, flightOrderID string) ([]model.SeatMap, bool) {
	raw, err := c.client.Get(ctx, key(flightOrderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Seat map cache read failed",
			zap.String("flight_order_id", flightOrderID),
			zap.Error(err),
		)
		return nil, false
	}

	var seatMaps []model.SeatMap
	if err := json.Unmarshal(raw, &seatMaps); err != nil {
		c.logger.Warn("Discarding undecodable cached seat map",
			zap.String("flight_order_id", flightOrderID),
			zap.Error(err),
		)
		return nil, false
	}
	model.StampRevisions(raw, seatMaps)
	return seatMaps, true
}

func (c *SeatMapCache) Set(ctx context.Context, flightOrderID string, seatMaps []model.SeatMap) {
	raw, err := json.Marshal(seatMaps)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(flightOrderID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Seat map cache write failed",
			zap.String("flight_order_id", flightOrderID),
			zap.Error(err),
		)
	}
}

func (c *SeatMapCache) Delete(ctx context.Context, flightOrderID string) bool {
	n, err := c.client.Del(ctx, key(flightOrderID)).Result()
	if err != nil {
		c.logger.Warn("Seat map cache delete failed",
			zap.String("flight_order_id", flightOrderID),
			zap.Error(err),
		)
		return false
	}
	return n > 0
}
