package model

import "time"

// Carpool represents one scheduled ride offer with a fixed seat
// capacity.  A carpool is created once by a driver and is never
// deleted; riders consume seats one at a time until none remain.
//
// Fields:
//  ID             – primary key identifier, assigned by the store.
//  DriverName     – name of the driver offering the ride.
//  Destination    – where the carpool is headed.
//  DepartureTime  – when the carpool leaves; immutable once set.
//  AvailableSeats – seats still open; never negative, only decreases.
//  SeatCapacity   – seats available at creation; upper bound for
//                   AvailableSeats for the lifetime of the record.
//  Notes          – optional free text from the driver.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Carpool struct {
	ID             uint64    `json:"id"`              // carpools.id
	DriverName     string    `json:"driver_name"`     // carpools.driver_name
	Destination    string    `json:"destination"`     // carpools.destination
	DepartureTime  time.Time `json:"departure_time"`  // carpools.departure_time
	AvailableSeats int       `json:"available_seats"` // carpools.available_seats
	SeatCapacity   int       `json:"seat_capacity"`   // carpools.seat_capacity
	Notes          string    `json:"notes"`           // carpools.notes (may be empty)
	CreatedAt      time.Time `json:"created_at"`      // carpools.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // carpools.updated_at
}
