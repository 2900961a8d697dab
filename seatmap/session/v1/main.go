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
	"github.com/google/uuid"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/repository"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/schema"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Start(ctx context.Context, bookingID string, flightOrderID string) (model.SeatSession, error)
	Find(ctx context.Context, bookingID string) (model.SeatSession, error)
	Clear(ctx context.Context, bookingID string) error
}

var (
	ErrMissingBookingID = errors.New("missing_booking_id")
	ErrMethodNotAllowed = errors.New("method_not_allowed")
)

type Request struct {
	BookingID     string `json:"booking_id"`
	FlightOrderID string `json:"flight_order_id"`
}

func Adapter(sessions SessionsRepository, newID func() string, logger *zap.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		switch req.HTTPMethod {
		case http.MethodPost:
			return start(ctx, sessions, newID, logger, req)
		case http.MethodGet, http.MethodDelete:
		default:
			return internal.Error(http.StatusMethodNotAllowed, ErrMethodNotAllowed), nil
		}

		bookingID := req.PathParameters["bookingId"]
		if internal.IsBlank(bookingID) {
			return internal.Error(http.StatusBadRequest, ErrMissingBookingID), nil
		}

		if req.HTTPMethod == http.MethodDelete {
			if err := sessions.Clear(ctx, bookingID); err != nil {
				logger.Error("Unable to clear session", zap.String("booking_id", bookingID), zap.Error(err))
				return internal.Error(http.StatusInternalServerError, err), nil
			}
			logger.Info("Session cleared", zap.String("booking_id", bookingID))
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
		}

		seatSession, err := sessions.Find(ctx, bookingID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}
		return internal.JSON(http.StatusOK, seatSession), nil
	}
}

func start(
	ctx context.Context,
	sessions SessionsRepository,
	newID func() string,
	logger *zap.Logger,
	req events.APIGatewayProxyRequest,
) (events.APIGatewayProxyResponse, error) {
	// Validations
	schemaErrors, err := schema.Validate(schema.StartSession, req.Body)
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
	if request.BookingID == "" {
		request.BookingID = newID()
	}

	seatSession, err := sessions.Start(ctx, request.BookingID, request.FlightOrderID)
	if err != nil {
		logger.Error("Unable to start session",
			zap.String("booking_id", request.BookingID),
			zap.String("flight_order_id", request.FlightOrderID),
			zap.Error(err),
		)
		return internal.Error(http.StatusInternalServerError, err), nil
	}

	logger.Info("Session started",
		zap.String("booking_id", seatSession.BookingID),
		zap.String("flight_order_id", seatSession.FlightOrderID),
	)
	return internal.JSON(http.StatusCreated, seatSession), nil
}

func main() {
	sessionsTable := internal.MustEnv("DYNAMODB_SEAT_SESSIONS")
	logger := internal.MustLogger("seat_session")
	defer logger.Sync()

	awsSession := session.Must(session.NewSession())
	sessions := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable)

	lambda.Start(Adapter(sessions, uuid.NewString, logger))
}
