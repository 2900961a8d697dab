// Package flightapi talks to the remote flight/booking API for seat map
// payloads.
package flightapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"go.uber.org/zap"
)

var (
	ErrSeatMapNotFound = errors.New("seat_map_not_found")
	ErrUnauthorized    = errors.New("flight_api_unauthorized")
)

const (
	seatMapsPath   = "/shopping/seatmaps"
	DefaultTimeout = 10 * time.Second
)

type apiError struct {
	Detail string `json:"detail"`
}

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// SeatMaps returns one seat map per flight segment of the order.
func (c *Client) SeatMaps(ctx context.Context, flightOrderID string) ([]model.SeatMap, error) {
	var seatMaps []model.SeatMap
	var apiErr apiError

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("flightorderId", flightOrderID).
		SetResult(&seatMaps).
		SetError(&apiErr).
		Get(seatMapsPath)
	if err != nil {
		c.logger.Error("Flight API call failed",
			zap.String("flight_order_id", flightOrderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to call flight API: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrSeatMapNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		c.logger.Error("Flight API returned error",
			zap.String("flight_order_id", flightOrderID),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("detail", apiErr.Detail),
		)
		return nil, fmt.Errorf("flight API error: %s (status: %d)", apiErr.Detail, resp.StatusCode())
	}

	model.StampRevisions(resp.Body(), seatMaps)
	c.logger.Debug("Fetched seat maps",
		zap.String("flight_order_id", flightOrderID),
		zap.Int("segments", len(seatMaps)),
	)
	return seatMaps, nil
}
