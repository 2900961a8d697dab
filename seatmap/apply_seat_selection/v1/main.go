package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/repository"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, event events.SQSEvent) error

type SessionsRepository interface {
	AssignSeat(ctx context.Context, bookingID string, travelerID string, seatNumber string) error
}

// Adapter applies queued seat selections to their sessions. Messages for
// missing or locked sessions are dropped; any other failure is returned so
// the batch is retried.
func Adapter(sessions SessionsRepository, logger *zap.Logger) Handler {
	return func(ctx context.Context, event events.SQSEvent) error {
		for _, record := range event.Records {
			msg := model.QueueMsgSeatSelected{}
			if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
				logger.Warn("Dropping malformed seat selection",
					zap.String("message_id", record.MessageId),
					zap.Error(err),
				)
				continue
			}

			err := sessions.AssignSeat(ctx, msg.BookingID, msg.TravelerID, msg.SeatNumber)
			if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionLocked) {
				logger.Warn("Dropping seat selection",
					zap.String("booking_id", msg.BookingID),
					zap.String("traveler_id", msg.TravelerID),
					zap.String("seat_number", msg.SeatNumber),
					zap.Error(err),
				)
				continue
			}
			if err != nil {
				return fmt.Errorf("assign seat %s to %s: %w", msg.SeatNumber, msg.TravelerID, err)
			}

			logger.Info("Seat assigned",
				zap.String("booking_id", msg.BookingID),
				zap.String("traveler_id", msg.TravelerID),
				zap.String("seat_number", msg.SeatNumber),
			)
		}
		return nil
	}
}

func main() {
	sessionsTable := internal.MustEnv("DYNAMODB_SEAT_SESSIONS")
	logger := internal.MustLogger("apply_seat_selection")
	defer logger.Sync()

	awsSession := session.Must(session.NewSession())
	sessions := repository.NewSessionsRepository(dynamodb.New(awsSession), sessionsTable)

	lambda.Start(Adapter(sessions, logger))
}
