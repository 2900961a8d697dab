package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
)

var (
	ErrSessionNotFound = errors.New("seat_session_not_found")
	ErrSessionLocked   = errors.New("seat_session_locked")
)

// SessionsRepository stores one seat session per booking, keyed by
// booking_id.
type SessionsRepository struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	now    func() time.Time
}

// Start creates the session with an empty selection map, replacing any
// previous session of the booking.
func (r *SessionsRepository) Start(ctx context.Context, bookingID string, flightOrderID string) (model.SeatSession, error) {
	s := model.SeatSession{
		BookingID:     bookingID,
		FlightOrderID: flightOrderID,
		Selections:    model.Selections{},
		CreatedAt:     r.now().UTC().Format(time.RFC3339),
	}

	_, err := r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]*dynamodb.AttributeValue{
			"booking_id": {
				S: aws.String(s.BookingID),
			},
			"flight_order_id": {
				S: aws.String(s.FlightOrderID),
			},
			"selections": {
				M: map[string]*dynamodb.AttributeValue{},
			},
			"locked": {
				BOOL: aws.Bool(false),
			},
			"created_at": {
				S: aws.String(s.CreatedAt),
			},
		},
	})
	if err != nil {
		return model.SeatSession{}, err
	}

	return s, nil
}

func (r *SessionsRepository) Find(ctx context.Context, bookingID string) (model.SeatSession, error) {
	out, err := r.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]*dynamodb.AttributeValue{
			"booking_id": {
				S: aws.String(bookingID),
			},
		},
	})
	if err != nil {
		return model.SeatSession{}, err
	}

	if len(out.Item) == 0 {
		return model.SeatSession{}, ErrSessionNotFound
	}

	return r.hydrate(out.Item), nil
}

// AssignSeat records seatNumber for travelerID. A seat held by another
// traveler of the booking is left in place.
func (r *SessionsRepository) AssignSeat(ctx context.Context, bookingID string, travelerID string, seatNumber string) error {
	_, err := r.client.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"booking_id": {
				S: aws.String(bookingID),
			},
		},
		ConditionExpression: aws.String("attribute_exists(booking_id) AND locked = :false"),
		UpdateExpression:    aws.String("SET selections.#traveler = :seat"),
		ExpressionAttributeNames: map[string]*string{
			"#traveler": aws.String(travelerID),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":seat": {
				S: aws.String(seatNumber),
			},
			":false": {
				BOOL: aws.Bool(false),
			},
		},
	})
	return r.conditionError(ctx, bookingID, err)
}

// Lock makes the session read-only.
func (r *SessionsRepository) Lock(ctx context.Context, bookingID string) (model.SeatSession, error) {
	out, err := r.client.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"booking_id": {
				S: aws.String(bookingID),
			},
		},
		ConditionExpression: aws.String("attribute_exists(booking_id)"),
		UpdateExpression:    aws.String("SET locked = :true"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":true": {
				BOOL: aws.Bool(true),
			},
		},
		ReturnValues: aws.String(dynamodb.ReturnValueAllNew),
	})
	if isConditionFailed(err) {
		return model.SeatSession{}, ErrSessionNotFound
	}
	if err != nil {
		return model.SeatSession{}, err
	}
	return r.hydrate(out.Attributes), nil
}

// Clear removes the session. Clearing a missing session is not an error.
func (r *SessionsRepository) Clear(ctx context.Context, bookingID string) error {
	_, err := r.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"booking_id": {
				S: aws.String(bookingID),
			},
		},
	})
	return err
}

func isConditionFailed(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}

// conditionError tells a missing session apart from a locked one after a
// failed condition.
func (r *SessionsRepository) conditionError(ctx context.Context, bookingID string, err error) error {
	if !isConditionFailed(err) {
		return err
	}
	if _, findErr := r.Find(ctx, bookingID); findErr != nil {
		return findErr
	}
	return ErrSessionLocked
}

func (r *SessionsRepository) hydrate(item map[string]*dynamodb.AttributeValue) model.SeatSession {
	s := model.SeatSession{
		Selections: model.Selections{},
	}

	if v, ok := item["booking_id"]; ok {
		s.BookingID = aws.StringValue(v.S)
	}
	if v, ok := item["flight_order_id"]; ok {
		s.FlightOrderID = aws.StringValue(v.S)
	}
	if v, ok := item["locked"]; ok {
		s.Locked = aws.BoolValue(v.BOOL)
	}
	if v, ok := item["created_at"]; ok {
		s.CreatedAt = aws.StringValue(v.S)
	}
	if v, ok := item["selections"]; ok {
		for traveler, seat := range v.M {
			s.Selections[traveler] = aws.StringValue(seat.S)
		}
	}

	return s
}

func NewSessionsRepository(client dynamodbiface.DynamoDBAPI, table string) *SessionsRepository {
	return &SessionsRepository{
		client: client,
		table:  table,
		now:    time.Now,
	}
}
