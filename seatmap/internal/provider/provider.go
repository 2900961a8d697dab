// Package provider resolves the seat map of a flight order segment, reading
// through the payload cache.
package provider

import (
	"context"
	"errors"

	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"go.uber.org/zap"
)

var ErrSegmentNotFound = errors.New("segment_not_found")

type FlightAPI interface {
	SeatMaps(ctx context.Context, flightOrderID string) ([]model.SeatMap, error)
}

type Cache interface {
	Get(ctx context.Context, flightOrderID string) ([]model.SeatMap, bool)
	Set(ctx context.Context, flightOrderID string, seatMaps []model.SeatMap)
	Delete(ctx context.Context, flightOrderID string) bool
}

type Provider struct {
	api    FlightAPI
	cache  Cache
	logger *zap.Logger
}

func New(api FlightAPI, cache Cache, logger *zap.Logger) *Provider {
	return &Provider{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// SeatMap returns the seat map for one segment of the order. A cached
// payload without the segment is evicted and fetched again; an order whose
// fresh payload has no such segment yields ErrSegmentNotFound.
func (p *Provider) SeatMap(ctx context.Context, flightOrderID string, segment int) (model.SeatMap, error) {
	if segment < 0 {
		return model.SeatMap{}, ErrSegmentNotFound
	}

	if seatMaps, ok := p.cache.Get(ctx, flightOrderID); ok {
		if segment < len(seatMaps) {
			p.logger.Debug("Seat map cache hit", zap.String("flight_order_id", flightOrderID))
			return seatMaps[segment], nil
		}
		p.logger.Info("Cached seat maps lack the segment, refetching",
			zap.String("flight_order_id", flightOrderID),
			zap.Int("segment", segment),
			zap.Int("segments", len(seatMaps)),
		)
		p.cache.Delete(ctx, flightOrderID)
	}

	seatMaps, err := p.fetch(ctx, flightOrderID)
	if err != nil {
		return model.SeatMap{}, err
	}
	if segment >= len(seatMaps) {
		return model.SeatMap{}, ErrSegmentNotFound
	}
	return seatMaps[segment], nil
}

func (p *Provider) fetch(ctx context.Context, flightOrderID string) ([]model.SeatMap, error) {
	seatMaps, err := p.api.SeatMaps(ctx, flightOrderID)
	if err != nil {
		return nil, err
	}
	p.cache.Set(ctx, flightOrderID, seatMaps)
	return seatMaps, nil
}
