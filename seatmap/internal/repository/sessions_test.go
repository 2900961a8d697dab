package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/stretchr/testify/require"
)

func createSessionsTable(client *dynamodb.DynamoDB, table string, t *testing.T) {
	_, err := client.CreateTable(&dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("booking_id"),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("booking_id"),
				KeyType:       aws.String("HASH"),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	})
	if err != nil {
		t.Errorf("Error while creating seat sessions table: %v\n", err)
	}
}

func newRepository(t *testing.T) (*SessionsRepository, func()) {
	table := "seat_sessions"
	closer, client := internal.DynamodbStart(t)
	createSessionsTable(client, table, t)
	repo := NewSessionsRepository(client, table)
	repo.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return repo, closer
}

func TestSessionsRepository_Lifecycle(t *testing.T) {

	// Arrange
	repo, closer := newRepository(t)
	defer closer()
	ctx := context.Background()

	// Act, Assert
	started, err := repo.Start(ctx, "b1", "order-1")
	require.NoError(t, err)

	found, err := repo.Find(ctx, "b1")
	require.NoError(t, err)
	if diff := cmp.Diff(started, found); diff != "" {
		t.Errorf("Error while finding session: (-want,+got)\n%s", diff)
	}

	require.NoError(t, repo.AssignSeat(ctx, "b1", "T1", "12A"))
	require.NoError(t, repo.AssignSeat(ctx, "b1", "T2", "12A"))
	require.NoError(t, repo.AssignSeat(ctx, "b1", "T1", "14C"))

	locked, err := repo.Lock(ctx, "b1")
	require.NoError(t, err)
	want := model.SeatSession{
		BookingID:     "b1",
		FlightOrderID: "order-1",
		Selections:    model.Selections{"T1": "14C", "T2": "12A"},
		Locked:        true,
		CreatedAt:     "2026-03-01T10:00:00Z",
	}
	if diff := cmp.Diff(want, locked); diff != "" {
		t.Errorf("Error while locking session: (-want,+got)\n%s", diff)
	}

	err = repo.AssignSeat(ctx, "b1", "T1", "1A")
	require.ErrorIs(t, err, ErrSessionLocked)

	require.NoError(t, repo.Clear(ctx, "b1"))
	_, err = repo.Find(ctx, "b1")
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, repo.Clear(ctx, "b1"))
}

func TestSessionsRepository_MissingSession(t *testing.T) {
	repo, closer := newRepository(t)
	defer closer()
	ctx := context.Background()

	err := repo.AssignSeat(ctx, "nope", "T1", "1A")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.Lock(ctx, "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsRepository_ConcurrentAssignments(t *testing.T) {
	// Arrange
	repo, closer := newRepository(t)
	defer closer()
	ctx := context.Background()
	_, err := repo.Start(ctx, "b1", "order-1")
	require.NoError(t, err)

	// Act, every traveler picks a seat at the same time
	limit := 20
	wg := sync.WaitGroup{}
	wg.Add(limit)
	errs := make(chan error, limit)
	for i := 0; i < limit; i++ {
		go func(ii int) {
			defer wg.Done()
			errs <- repo.AssignSeat(ctx, "b1", fmt.Sprintf("T%v", ii), fmt.Sprintf("%vA", ii+1))
		}(i)
	}
	wg.Wait()
	close(errs)

	// Assert
	for err := range errs {
		require.NoError(t, err)
	}
	found, err := repo.Find(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, found.Selections, limit)
	require.Equal(t, "1A", found.Selections["T0"])
}
