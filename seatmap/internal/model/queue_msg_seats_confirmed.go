package model

type QueueMsgSeatsConfirmed struct {
	BookingID     string     `json:"booking_id"`
	FlightOrderID string     `json:"flight_order_id"`
	ContactEmail  string     `json:"contact_email"`
	Selections    Selections `json:"selections"`
}
