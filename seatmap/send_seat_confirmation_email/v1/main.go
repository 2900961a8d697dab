package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"go.uber.org/zap"
)

type Handler func(ctx context.Context, event events.SQSEvent) error

type Mailer interface {
	SendEmail(ctx context.Context, subject string, body string, from string, to []string, cc []string) error
}

const emailSubject = "Your seats are confirmed"

var emailTemplate = `Hello!
Your seats for booking %v (flight order %v) are confirmed:
%v
`

// EmailBody lists one line per traveler, ordered by traveler id.
func EmailBody(msg model.QueueMsgSeatsConfirmed) string {
	travelers := make([]string, 0, len(msg.Selections))
	for travelerID := range msg.Selections {
		travelers = append(travelers, travelerID)
	}
	sort.Strings(travelers)

	lines := make([]string, 0, len(travelers))
	for _, travelerID := range travelers {
		lines = append(lines, fmt.Sprintf("  Passenger %v: seat %v", travelerID, msg.Selections[travelerID]))
	}
	if len(lines) == 0 {
		lines = append(lines, "  No seats were selected.")
	}

	return fmt.Sprintf(emailTemplate, msg.BookingID, msg.FlightOrderID, strings.Join(lines, "\n"))
}

func Adapter(mailer Mailer, senderEmail string, logger *zap.Logger) Handler {
	return func(ctx context.Context, event events.SQSEvent) error {
		for _, record := range event.Records {
			msg := model.QueueMsgSeatsConfirmed{}
			if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
				logger.Warn("Dropping malformed seat confirmation",
					zap.String("message_id", record.MessageId),
					zap.Error(err),
				)
				continue
			}

			err := mailer.SendEmail(
				ctx,
				emailSubject,
				EmailBody(msg),
				senderEmail,
				[]string{msg.ContactEmail},
				nil,
			)
			if err != nil {
				return fmt.Errorf("send seat confirmation for %s: %w", msg.BookingID, err)
			}
			logger.Info("Seat confirmation sent", zap.String("booking_id", msg.BookingID))
		}
		return nil
	}
}

func main() {
	senderEmail := internal.MustEnv("SENDER_EMAIL")
	logger := internal.MustLogger("send_seat_confirmation_email")
	defer logger.Sync()

	awsSession := session.Must(session.NewSession())
	mailer := internal.NewMailer(ses.New(awsSession))

	lambda.Start(Adapter(mailer, senderEmail, logger))
}
