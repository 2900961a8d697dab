package model

type QueueMsgSeatSelected struct {
	BookingID  string `json:"booking_id"`
	TravelerID string `json:"traveler_id"`
	SeatNumber string `json:"seat_number"`
	Price      *Price `json:"price,omitempty"`
}
