package model

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// SeatMap is the deck-map payload served by the flight API for one flight
// segment. Only the first deck is rendered.
type SeatMap struct {
	ID    string `json:"id,omitempty"`
	Decks []Deck `json:"decks"`

	// Revision identifies the payload the map was decoded from, so equal
	// revisions carry equal decks. Empty when unknown.
	Revision string `json:"-"`
}

// StampRevisions sets the revision of every map decoded from raw: a BLAKE3
// hash of the payload plus the segment index.
func StampRevisions(raw []byte, seatMaps []SeatMap) {
	sum := blake3.Sum256(raw)
	digest := hex.EncodeToString(sum[:])
	for i := range seatMaps {
		seatMaps[i].Revision = digest + "/" + strconv.Itoa(i)
	}
}

type Deck struct {
	DeckConfiguration DeckConfiguration `json:"deckConfiguration"`
	Seats             []Seat            `json:"seats"`
	Facilities        []Facility        `json:"facilities"`
}

// DeckConfiguration describes the grid. Width counts columns, Length counts
// rows. StartWingsX/EndWingsX and ExitRowsX are grid row indices.
type DeckConfiguration struct {
	Width         int   `json:"width"`
	Length        int   `json:"length"`
	StartSeatRow  *int  `json:"startSeatRow,omitempty"`
	EndSeatRow    *int  `json:"endSeatRow,omitempty"`
	StartWingsX   *int  `json:"startWingsX,omitempty"`
	EndWingsX     *int  `json:"endWingsX,omitempty"`
	StartWingsRow *int  `json:"startWingsRow,omitempty"`
	EndWingsRow   *int  `json:"endWingsRow,omitempty"`
	ExitRowsX     []int `json:"exitRowsX,omitempty"`
}

// Coordinates locate a cell: X is the row, Y the column.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Seat struct {
	Number               string            `json:"number"`
	Cabin                string            `json:"cabin,omitempty"`
	Coordinates          Coordinates       `json:"coordinates"`
	CharacteristicsCodes []string          `json:"characteristicsCodes,omitempty"`
	TravelerPricing      []TravelerPricing `json:"travelerPricing,omitempty"`
}

type Availability string

const (
	Available Availability = "AVAILABLE"
	Occupied  Availability = "OCCUPIED"
	Blocked   Availability = "BLOCKED"
)

type TravelerPricing struct {
	TravelerID             string       `json:"travelerId"`
	SeatAvailabilityStatus Availability `json:"seatAvailabilityStatus"`
	Price                  *Price       `json:"price,omitempty"`
}

// Price keeps the decimal total as the API sends it.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Facility is a non-seat cell such as a galley or lavatory.
type Facility struct {
	Code        string      `json:"code"`
	Column      string      `json:"column,omitempty"`
	Position    string      `json:"position,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

// Selections maps traveler id to the seat number assigned to that traveler.
type Selections map[string]string
