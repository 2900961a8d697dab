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
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/repository"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/schema"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type SessionsRepository interface {
	Lock(ctx context.Context, bookingID string) (model.SeatSession, error)
}

type Enqueuer interface {
	SendMsg(ctx context.Context, msg interface{}, queue string) error
}

type Request struct {
	BookingID    string `json:"booking_id"`
	ContactEmail string `json:"contact_email"`
}

func Adapter(sessions SessionsRepository, enqueuer Enqueuer, confirmationsQueue string, logger *zap.Logger) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		// Validations
		schemaErrors, err := schema.Validate(schema.ConfirmSeats, req.Body)
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

		// Lock the session, later views are read-only
		seatSession, err := sessions.Lock(ctx, request.BookingID)
		if errors.Is(err, repository.ErrSessionNotFound) {
			return internal.Error(http.StatusNotFound, err), nil
		}
		if err != nil {
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		// Send to queue
		msg := model.QueueMsgSeatsConfirmed{
			BookingID:     seatSession.BookingID,
			FlightOrderID: seatSession.FlightOrderID,
			ContactEmail:  request.ContactEmail,
			Selections:    seatSession.Selections,
		}
		if err := enqueuer.SendMsg(ctx, msg, confirmationsQueue); err != nil {
			logger.Error("Unable to queue seat confirmation",
				zap.String("booking_id", request.BookingID),
				zap.Error(err),
			)
			return internal.Error(http.StatusInternalServerError, err), nil
		}

		logger.Info("Seats confirmed",
			zap.String("booking_id", msg.BookingID),
			zap.Int("travelers", len(msg.Selections)),
		)
		return internal.JSON(http.StatusAccepted, msg), nil
	}
}

func main() {
	sessionsTable := internal.MustEnv("DYNAMODB_SEAT_SESSIONS")
	confirmationsQueue := internal.MustEnv("SQS_SEAT_CONFIRMATIONS")
	logger := internal.MustLogger("confirm_seats")
	defer logger.Sync()

	awsSession := session.Must(session.NewSession())
	sessions := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable)
	enqueuer := internal.NewEnqueuer(sqs.New(awsSession), 0)

	lambda.Start(Adapter(sessions, enqueuer, confirmationsQueue, logger))
}
