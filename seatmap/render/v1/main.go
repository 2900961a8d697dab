package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/flightapi"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/provider"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/renderer"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/repository"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Find(ctx context.Context, bookingID string) (model.SeatSession, error)
}

type SeatMapProvider interface {
	SeatMap(ctx context.Context, flightOrderID string, segment int) (model.SeatMap, error)
}

var (
	ErrMissingTraveler = errors.New("missing_traveler")
	ErrInvalidSegment  = errors.New("invalid_segment")
)

func Adapter(sessions SessionsRepository, seatMaps SeatMapProvider, seatMapRenderer *renderer.Renderer, logger *zap.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// Get request parameters
		bookingID := req.PathParameters["bookingId"]
		query := req.QueryStringParameters
		travelerID := query["traveler"]
		if internal.IsBlank(bookingID) || internal.IsBlank(travelerID) {
			return internal.Error(http.StatusBadRequest, ErrMissingTraveler), nil
		}
		segment := 0
		if v, ok := query["segment"]; ok {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return internal.Error(http.StatusBadRequest, ErrInvalidSegment), nil
			}
			segment = n
		}

		// Find the session
		seatSession, err := sessions.Find(ctx, bookingID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// A missing seat map renders the placeholder
		seatMap, err := seatMaps.SeatMap(ctx, seatSession.FlightOrderID, segment)
		if errors.Is(err, flightapi.ErrSeatMapNotFound) || errors.Is(err, provider.ErrSegmentNotFound) {
			logger.Info("No seat map for segment",
				zap.String("booking_id", bookingID),
				zap.Int("segment", segment),
			)
			seatMap = model.SeatMap{}
		} else if err != nil {
			return internal.Error(http.StatusBadGateway, err), nil
		}

		hover := renderer.Hover{}
		hover.Enter(query["hovered"])
		hover.Leave(query["left"])

		props := renderer.Props{
			SeatMap:    seatMap,
			Selections: seatSession.Selections,
			TravelerID: travelerID,
			ReadOnly:   seatSession.Locked || query["readOnly"] == "true",
		}

		// Respond
		if query["format"] == "json" {
			return internal.JSON(http.StatusOK, seatMapRenderer.View(props, hover)), nil
		}
		html, err := seatMapRenderer.RenderString(props, hover)
		if err != nil {
			logger.Error("Unable to render seat map", zap.String("booking_id", bookingID), zap.Error(err))
			return internal.Error(http.StatusInternalServerError, err), nil
		}
		return internal.HTML(http.StatusOK, html), nil
	}
}

func main() {
	sessionsTable := internal.MustEnv("DYNAMODB_SEAT_SESSIONS")
	logger := internal.MustLogger("render_seat_map")
	defer logger.Sync()

	awsSession := session.Must(session.NewSession())
	sessions := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable)
	seatMapRenderer := renderer.New(renderer.NewGridCache(internal.IntEnvOr("GRID_CACHE_SIZE", 64)))

	lambda.Start(Adapter(sessions, provider.FromEnv(logger), seatMapRenderer, logger))
}
