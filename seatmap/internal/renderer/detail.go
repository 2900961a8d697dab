package renderer

import (
	"fmt"

	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
)

const (
	defaultCabin = "Economy Class"
	freeFare     = "FREE"
)

var featureLabels = map[string]string{
	"W":  "Window",
	"A":  "Aisle",
	"E":  "Exit Row",
	"L":  "Legroom+",
	"K":  "Bulkhead",
	"O":  "Standard",
	"EK": "Blocked",
}

// FeatureLabel maps a characteristic code to its badge text. Unknown codes
// are shown as is.
func FeatureLabel(code string) string {
	if label, ok := featureLabels[code]; ok {
		return label
	}
	return code
}

// Fare is the price line of the detail panel for the active traveler.
func Fare(seat model.Seat, travelerID string) string {
	p := ResolvePricing(seat, travelerID)
	if p == nil || !IsChargeable(p.Price) {
		return freeFare
	}
	return fmt.Sprintf("%s %s", p.Price.Currency, p.Price.Total)
}

type DetailPanel struct {
	Hovered  bool     `json:"hovered"`
	Number   string   `json:"number,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Features []string `json:"features,omitempty"`
	Fare     string   `json:"fare,omitempty"`

	TravelerID string `json:"travelerId"`
	Verified   bool   `json:"verified"`
	Assignment string `json:"assignment,omitempty"`
}

func NewDetailPanel(hovered *model.Seat, selections model.Selections, travelerID string) DetailPanel {
	panel := DetailPanel{TravelerID: travelerID}

	if seat, ok := selections[travelerID]; ok && seat != "" {
		panel.Verified = true
		panel.Assignment = seat
	}

	if hovered == nil {
		return panel
	}

	panel.Hovered = true
	panel.Number = hovered.Number
	panel.Fare = Fare(*hovered, travelerID)

	switch traveler, assigned := AssignedTo(selections, hovered.Number); {
	case assigned:
		panel.Subtitle = "Assigned to Passenger " + traveler
	case hovered.Cabin != "":
		panel.Subtitle = hovered.Cabin
	default:
		panel.Subtitle = defaultCabin
	}

	for _, code := range hovered.CharacteristicsCodes {
		panel.Features = append(panel.Features, FeatureLabel(code))
	}
	return panel
}
