package renderer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
)

// SeatState is the visual state of a seat cell.
type SeatState string

const (
	StateAvailable SeatState = "AVAILABLE"
	StateOccupied  SeatState = "OCCUPIED"
	StateBlocked   SeatState = "BLOCKED"
	StateSelected  SeatState = "SELECTED"
)

const windowCode = "W"

// ResolvePricing picks the pricing entry of the active traveler, falling back
// to the first entry. Nil when the seat carries no pricing at all.
func ResolvePricing(seat model.Seat, travelerID string) *model.TravelerPricing {
	for i := range seat.TravelerPricing {
		if seat.TravelerPricing[i].TravelerID == travelerID {
			return &seat.TravelerPricing[i]
		}
	}
	if len(seat.TravelerPricing) > 0 {
		return &seat.TravelerPricing[0]
	}
	return nil
}

// ResolveAvailability returns the status of the resolved pricing entry, then
// the status of the first entry, then AVAILABLE.
func ResolveAvailability(seat model.Seat, travelerID string) model.Availability {
	if p := ResolvePricing(seat, travelerID); p != nil && p.SeatAvailabilityStatus != "" {
		return p.SeatAvailabilityStatus
	}
	if len(seat.TravelerPricing) > 0 && seat.TravelerPricing[0].SeatAvailabilityStatus != "" {
		return seat.TravelerPricing[0].SeatAvailabilityStatus
	}
	return model.Available
}

// IsSelected reports whether any traveler holds the seat, not only the
// active one.
func IsSelected(selections model.Selections, number string) bool {
	for _, seat := range selections {
		if seat == number {
			return true
		}
	}
	return false
}

// AssignedTo returns the traveler holding the seat. Ties resolve to the
// lowest traveler id so output is stable.
func AssignedTo(selections model.Selections, number string) (string, bool) {
	travelers := make([]string, 0, len(selections))
	for traveler, seat := range selections {
		if seat == number {
			travelers = append(travelers, traveler)
		}
	}
	if len(travelers) == 0 {
		return "", false
	}
	sort.Strings(travelers)
	return travelers[0], true
}

func priceAmount(price *model.Price) (float64, bool) {
	if price == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(price.Total), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsChargeable is true for a price that parses to a positive amount.
func IsChargeable(price *model.Price) bool {
	v, ok := priceAmount(price)
	return ok && v > 0
}

// PriceBadge renders the compact price shown on the seat, e.g. "USD25".
func PriceBadge(price *model.Price) string {
	v, ok := priceAmount(price)
	if !ok {
		return ""
	}
	return price.Currency + strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func hasCode(seat model.Seat, code string) bool {
	for _, c := range seat.CharacteristicsCodes {
		if c == code {
			return true
		}
	}
	return false
}

// SeatCell is everything needed to draw one seat control.
type SeatCell struct {
	Number       string             `json:"number"`
	Row          int                `json:"row"`
	Column       int                `json:"column"`
	Availability model.Availability `json:"availability"`
	State        SeatState          `json:"state"`
	Price        *model.Price       `json:"price,omitempty"`
	Chargeable   bool               `json:"chargeable"`
	Badge        string             `json:"badge,omitempty"`
	ExitRow      bool               `json:"exitRow"`
	ExitLeft     bool               `json:"exitLeft"`
	ExitRight    bool               `json:"exitRight"`
	Window       bool               `json:"window"`
	Interactive  bool               `json:"interactive"`
	Hovered      bool               `json:"hovered"`
}

func (c SeatCell) Selected() bool {
	return c.State == StateSelected
}

type cellContext struct {
	travelerID string
	selections model.Selections
	readOnly   bool
	exitRows   map[int]bool
	width      int
	hovered    string
}

func newSeatCell(seat model.Seat, pos model.Coordinates, ctx cellContext) SeatCell {
	availability := ResolveAvailability(seat, ctx.travelerID)
	selected := IsSelected(ctx.selections, seat.Number)

	var price *model.Price
	if p := ResolvePricing(seat, ctx.travelerID); p != nil {
		price = p.Price
	}

	cell := SeatCell{
		Number:       seat.Number,
		Row:          pos.X,
		Column:       pos.Y,
		Availability: availability,
		Price:        price,
		Chargeable:   IsChargeable(price),
		ExitRow:      ctx.exitRows[pos.X],
		Hovered:      ctx.hovered != "" && ctx.hovered == seat.Number,
	}

	switch {
	case selected:
		cell.State = StateSelected
	case availability == model.Available:
		cell.State = StateAvailable
	case availability == model.Occupied:
		cell.State = StateOccupied
	default:
		// unknown statuses are not bookable
		cell.State = StateBlocked
	}

	cell.Interactive = !ctx.readOnly && (availability == model.Available || selected)
	cell.Window = hasCode(seat, windowCode) && !selected
	if cell.ExitRow {
		cell.ExitLeft = pos.Y == 0
		cell.ExitRight = pos.Y == ctx.width-1
	}
	if cell.Chargeable && cell.State == StateAvailable {
		cell.Badge = PriceBadge(price)
	}
	return cell
}

// Hover tracks the seat under the pointer for the detail panel.
type Hover struct {
	seat string
}

func (h *Hover) Enter(number string) {
	h.seat = number
}

// Leave clears the hover only when number is the hovered seat, so a late
// leave from a previous seat does not wipe a newer hover.
func (h *Hover) Leave(number string) {
	if h.seat == number {
		h.seat = ""
	}
}

func (h Hover) Seat() string {
	return h.seat
}
