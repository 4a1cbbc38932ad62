// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatClaimedEvent is published when a rider successfully claims a seat.
// It contains enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type SeatClaimedEvent struct {
	CarpoolID     uint64 `json:"carpool_id"`
	DriverName    string `json:"driver_name"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	SeatsLeft     int    `json:"seats_left"`
	SeatCapacity  int    `json:"seat_capacity"`
	ClaimedAt     string `json:"claimed_at"`
}
