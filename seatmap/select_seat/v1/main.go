package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/flightapi"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/provider"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/renderer"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/repository"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/schema"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Find(ctx context.Context, bookingID string) (model.SeatSession, error)
}

type SeatMapProvider interface {
	SeatMap(ctx context.Context, flightOrderID string, segment int) (model.SeatMap, error)
}

type Enqueuer interface {
	SendMsg(ctx context.Context, msg interface{}, queue string) error
}

type Request struct {
	BookingID  string `json:"booking_id"`
	TravelerID string `json:"traveler_id"`
	SeatNumber string `json:"seat_number"`
	Segment    int    `json:"segment"`
}

func Adapter(
	sessions SessionsRepository,
	seatMaps SeatMapProvider,
	seatMapRenderer *renderer.Renderer,
	enqueuer Enqueuer,
	selectionsQueue string,
	logger *zap.Logger,
) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// Validations
		schemaErrors, err := schema.Validate(schema.SelectSeat, req.Body)
		if err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}
		if len(schemaErrors) > 0 {
			return internal.SchemaErrors(http.StatusBadRequest, schemaErrors), nil
		}
		request := Request{}
		if err := json.Unmarshal([]byte(req.Body), &request); err != nil {
			return internal.Error(http.StatusBadRequest, err), nil
		}

		// Find the session
		seatSession, err := sessions.Find(ctx, request.BookingID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Find the seat map
		seatMap, err := seatMaps.SeatMap(ctx, seatSession.FlightOrderID, request.Segment)
		if errors.Is(err, flightapi.ErrSeatMapNotFound) || errors.Is(err, provider.ErrSegmentNotFound) {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusBadGateway, err), nil
		}

		// Select, the queue consumer applies it to the session
		var queued model.QueueMsgSeatSelected
		err = seatMapRenderer.Select(renderer.Props{
			SeatMap:    seatMap,
			Selections: seatSession.Selections,
			TravelerID: request.TravelerID,
			ReadOnly:   seatSession.Locked,
			OnSelect: func(travelerID string, seatNumber string, price *model.Price) error {
				queued = model.QueueMsgSeatSelected{
					BookingID:  seatSession.BookingID,
					TravelerID: travelerID,
					SeatNumber: seatNumber,
					Price:      price,
				}
				return enqueuer.SendMsg(ctx, queued, selectionsQueue)
			},
		}, request.SeatNumber)
		switch {
		case errors.Is(err, renderer.ErrNoSeatMap), errors.Is(err, renderer.ErrSeatNotFound):
			return internal.Error(http.StatusNotFound, err), nil
		case errors.Is(err, renderer.ErrReadOnly):
			return internal.Error(http.StatusConflict, err), nil
		case errors.Is(err, renderer.ErrSeatNotSelectable):
			return internal.Error(http.StatusUnprocessableEntity, err), nil
		case err != nil:
			logger.Error("Unable to queue seat selection",
				zap.String("booking_id", request.BookingID),
				zap.String("traveler_id", request.TravelerID),
				zap.String("seat_number", request.SeatNumber),
				zap.Error(err),
			)
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		logger.Info("Seat selection queued",
			zap.String("booking_id", queued.BookingID),
			zap.String("traveler_id", queued.TravelerID),
			zap.String("seat_number", queued.SeatNumber),
		)
		return internal.JSON(http.StatusAccepted, queued), nil
	}
}

func main() {
	sessionsTable := internal.MustEnv("DYNAMODB_SEAT_SESSIONS")
	selectionsQueue := internal.MustEnv("SQS_SEAT_SELECTIONS")
	logger := internal.MustLogger("select_seat")
	defer logger.Sync()

	awsSession := session.Must(session.NewSession())
	sessions := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable)
	enqueuer := internal.NewEnqueuer(sqs.New(awsSession), 0)
	seatMapRenderer := renderer.New(renderer.NewGridCache(internal.IntEnvOr("GRID_CACHE_SIZE", 64)))

	lambda.Start(Adapter(sessions, provider.FromEnv(logger), seatMapRenderer, enqueuer, selectionsQueue, logger))
}
