package renderer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/stretchr/testify/require"
)

func TestFeatureLabel(t *testing.T) {
	require.Equal(t, "Window", FeatureLabel("W"))
	require.Equal(t, "Legroom+", FeatureLabel("L"))
	require.Equal(t, "Blocked", FeatureLabel("EK"))
	require.Equal(t, "1D", FeatureLabel("1D"))
}

func TestNewDetailPanel(t *testing.T) {

	seat := model.Seat{
		Number:               "12C",
		CharacteristicsCodes: []string{"A", "CH"},
		TravelerPricing: []model.TravelerPricing{
			{TravelerID: "T1", SeatAvailabilityStatus: model.Available, Price: &model.Price{Total: "0.00", Currency: "USD"}},
			{TravelerID: "T2", SeatAvailabilityStatus: model.Available, Price: &model.Price{Total: "18.00", Currency: "USD"}},
		},
	}

	tests := []struct {
		name       string
		hovered    *model.Seat
		selections model.Selections
		traveler   string
		want       DetailPanel
	}{
		{
			name:     "Nothing hovered, nothing selected",
			traveler: "T1",
			want:     DetailPanel{TravelerID: "T1"},
		},
		{
			name:       "Nothing hovered, active traveler has a seat",
			selections: model.Selections{"T1": "3A"},
			traveler:   "T1",
			want:       DetailPanel{TravelerID: "T1", Verified: true, Assignment: "3A"},
		},
		{
			name:     "Zero price reads FREE",
			hovered:  &seat,
			traveler: "T1",
			want: DetailPanel{
				Hovered: true, Number: "12C", Subtitle: "Economy Class",
				Features: []string{"Aisle", "CH"}, Fare: "FREE", TravelerID: "T1",
			},
		},
		{
			name:       "Chargeable price for the active traveler, seat held by another traveler",
			hovered:    &seat,
			selections: model.Selections{"T1": "12C"},
			traveler:   "T2",
			want: DetailPanel{
				Hovered: true, Number: "12C", Subtitle: "Assigned to Passenger T1",
				Features: []string{"Aisle", "CH"}, Fare: "USD 18.00", TravelerID: "T2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDetailPanel(tt.hovered, tt.selections, tt.traveler)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Differences found: (-want,+got)\n%s", diff)
			}
		})
	}
}

func TestNewDetailPanel_Cabin(t *testing.T) {
	seat := model.Seat{Number: "2A", Cabin: "BUSINESS"}

	got := NewDetailPanel(&seat, nil, "T1")

	require.Equal(t, "BUSINESS", got.Subtitle)
	require.Equal(t, "FREE", got.Fare)
}
