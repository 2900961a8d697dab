package model

// SeatSession is the seat selection state of one booking. It is created when
// the seat selection step starts, locked when the booking is confirmed and
// deleted when the traveler leaves the flow.
type SeatSession struct {
	BookingID     string     `json:"booking_id"`
	FlightOrderID string     `json:"flight_order_id"`
	Selections    Selections `json:"selections"`
	Locked        bool       `json:"locked"`
	CreatedAt     string     `json:"created_at"`
}
