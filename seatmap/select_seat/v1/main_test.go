package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/flight_seat_map/internal"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/provider"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/renderer"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type SessionsRepositoryMock struct {
	mock.Mock
}

func (m *SessionsRepositoryMock) Find(ctx context.Context, bookingID string) (model.SeatSession, error) {
	ret := m.Called(bookingID)
	return ret.Get(0).(model.SeatSession), ret.Error(1)
}

type SeatMapProviderMock struct {
	mock.Mock
}

func (m *SeatMapProviderMock) SeatMap(ctx context.Context, flightOrderID string, segment int) (model.SeatMap, error) {
	ret := m.Called(flightOrderID, segment)
	return ret.Get(0).(model.SeatMap), ret.Error(1)
}

type EnqueuerMock struct {
	mock.Mock
}

func (m *EnqueuerMock) SendMsg(ctx context.Context, msg interface{}, queue string) error {
	ret := m.Called(msg, queue)
	return ret.Error(0)
}

func seatMap(status model.Availability) model.SeatMap {
	return model.SeatMap{
		Decks: []model.Deck{
			{
				DeckConfiguration: model.DeckConfiguration{Width: 6, Length: 1},
				Seats: []model.Seat{
					{
						Number:      "1A",
						Coordinates: model.Coordinates{X: 0, Y: 0},
						TravelerPricing: []model.TravelerPricing{
							{
								TravelerID:             "T1",
								SeatAvailabilityStatus: status,
								Price:                  &model.Price{Total: "25.00", Currency: "USD"},
							},
						},
					},
				},
			},
		},
	}
}

func openSession() model.SeatSession {
	return model.SeatSession{
		BookingID:     "b1",
		FlightOrderID: "order-1",
		Selections:    model.Selections{},
	}
}

func TestAdapter(t *testing.T) {

	type mocks struct {
		sessions *SessionsRepositoryMock
		seatMaps *SeatMapProviderMock
		enqueuer *EnqueuerMock
	}

	type args struct {
		selectionsQueue string
	}

	validBody := `{
		"booking_id": "b1",
		"traveler_id": "T1",
		"seat_number": "1A"
	}`

	jsonResponse := func(status int, body string) events.APIGatewayProxyResponse {
		return events.APIGatewayProxyResponse{
			StatusCode: status,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			Body: internal.TrimLines(body),
		}
	}

	tests := []struct {
		name   string
		req    events.APIGatewayProxyRequest
		want   events.APIGatewayProxyResponse
		mocks  mocks
		args   args
		mocker func(m mocks, a args)
	}{
		{
			name: "Get a 202 status code after queueing the selection of an available seat",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusAccepted, `{
				"booking_id": "b1",
				"traveler_id": "T1",
				"seat_number": "1A",
				"price": {
					"total": "25.00",
					"currency": "USD"
				}
			}`),
			args: args{selectionsQueue: "selections"},
			mocker: func(m mocks, a args) {
				m.sessions.On("Find", "b1").Return(openSession(), nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(seatMap(model.Available), nil).Once()
				m.enqueuer.On(
					"SendMsg",
					model.QueueMsgSeatSelected{
						BookingID:  "b1",
						TravelerID: "T1",
						SeatNumber: "1A",
						Price:      &model.Price{Total: "25.00", Currency: "USD"},
					},
					a.selectionsQueue,
				).Return(nil).Once()
			},
		},
		{
			name: "Get a 202 status code when the traveler selects the seat they already hold",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusAccepted, `{
				"booking_id": "b1",
				"traveler_id": "T1",
				"seat_number": "1A",
				"price": {
					"total": "25.00",
					"currency": "USD"
				}
			}`),
			args: args{selectionsQueue: "selections"},
			mocker: func(m mocks, a args) {
				s := openSession()
				s.Selections["T1"] = "1A"
				m.sessions.On("Find", "b1").Return(s, nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(seatMap(model.Available), nil).Once()
				m.enqueuer.On("SendMsg", mock.Anything, a.selectionsQueue).Return(nil).Once()
			},
		},
		{
			name:   "Get a 400 status because request body is malformed",
			req:    events.APIGatewayProxyRequest{Body: `{"booking_id": "b1",}`},
			want:   jsonResponse(http.StatusBadRequest, `{"errors":["invalid character '}' looking for beginning of object key string"]}`),
			mocker: func(m mocks, a args) {},
		},
		{
			name: "Get a 400 status because traveler_id field is missing",
			req:  events.APIGatewayProxyRequest{Body: `{"booking_id": "b1", "seat_number": "1A"}`},
			want: events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: `{"errors":["(root): traveler_id is required"]}`,
			},
			mocker: func(m mocks, a args) {},
		},
		{
			name: "Get a 404 status because the session was not found",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusNotFound, `{"errors":["seat_session_not_found"]}`),
			mocker: func(m mocks, a args) {
				m.sessions.On("Find", "b1").Return(model.SeatSession{}, repository.ErrSessionNotFound).Once()
			},
		},
		{
			name: "Get a 404 status because the order has no such segment",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusNotFound, `{"errors":["segment_not_found"]}`),
			mocker: func(m mocks, a args) {
				m.sessions.On("Find", "b1").Return(openSession(), nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(model.SeatMap{}, provider.ErrSegmentNotFound).Once()
			},
		},
		{
			name: "Get a 404 status because the seat is not in the seat map",
			req: events.APIGatewayProxyRequest{Body: `{
				"booking_id": "b1",
				"traveler_id": "T1",
				"seat_number": "UD-12"
			}`},
			want: jsonResponse(http.StatusNotFound, `{"errors":["seat_not_found_in_seat_map"]}`),
			mocker: func(m mocks, a args) {
				m.sessions.On("Find", "b1").Return(openSession(), nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(seatMap(model.Available), nil).Once()
			},
		},
		{
			name: "Get a 409 status because the booking is confirmed",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusConflict, `{"errors":["seat_map_is_read_only"]}`),
			mocker: func(m mocks, a args) {
				s := openSession()
				s.Locked = true
				m.sessions.On("Find", "b1").Return(s, nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(seatMap(model.Available), nil).Once()
			},
		},
		{
			name: "Get a 422 status because the seat is occupied",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusUnprocessableEntity, `{"errors":["seat_not_selectable"]}`),
			mocker: func(m mocks, a args) {
				m.sessions.On("Find", "b1").Return(openSession(), nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(seatMap(model.Occupied), nil).Once()
			},
		},
		{
			name: "Get a 500 status because the selection could not be queued",
			req:  events.APIGatewayProxyRequest{Body: validBody},
			want: jsonResponse(http.StatusInternalServerError, `{"errors":["unexpected_enqueue"]}`),
			args: args{selectionsQueue: "selections"},
			mocker: func(m mocks, a args) {
				m.sessions.On("Find", "b1").Return(openSession(), nil).Once()
				m.seatMaps.On("SeatMap", "order-1", 0).Return(seatMap(model.Available), nil).Once()
				m.enqueuer.On("SendMsg", mock.Anything, a.selectionsQueue).Return(errors.New("unexpected_enqueue")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			tt.mocks = mocks{
				sessions: &SessionsRepositoryMock{},
				seatMaps: &SeatMapProviderMock{},
				enqueuer: &EnqueuerMock{},
			}
			tt.mocker(tt.mocks, tt.args)

			// Act
			handler := Adapter(
				tt.mocks.sessions,
				tt.mocks.seatMaps,
				renderer.New(nil),
				tt.mocks.enqueuer,
				tt.args.selectionsQueue,
				zap.NewNop(),
			)
			got, err := handler(context.Background(), tt.req)

			// Assert
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Differences found: (-want,+got)\n%s", diff)
			}
			tt.mocks.sessions.AssertExpectations(t)
			tt.mocks.seatMaps.AssertExpectations(t)
			tt.mocks.enqueuer.AssertExpectations(t)
		})
	}

}
