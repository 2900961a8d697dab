package provider

import (
	"github.com/go-redis/redis/v8"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/cache"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/flightapi"
	"go.uber.org/zap"
)

// FromEnv wires the flight API client and the Redis cache for a Lambda.
// FLIGHT_API_URL is required.
func FromEnv(logger *zap.Logger) *Provider {
	api := flightapi.NewClient(
		internal.MustEnv("FLIGHT_API_URL"),
		internal.EnvOr("FLIGHT_API_TOKEN", ""),
		internal.DurationEnvOr("FLIGHT_API_TIMEOUT", flightapi.DefaultTimeout),
		logger,
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     internal.EnvOr("REDIS_ADDR", "redis:6379"),
		Password: internal.EnvOr("REDIS_PASSWORD", ""),
		DB:       internal.IntEnvOr("REDIS_DB", 0),
	})
	seatMapCache := cache.NewSeatMapCache(
		redisClient,
		internal.DurationEnvOr("SEAT_MAP_CACHE_TTL", cache.DefaultTTL),
		logger,
	)

	return New(api, seatMapCache, logger)
}
