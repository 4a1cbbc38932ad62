// Package validation checks a proposed carpool's fields before
// creation.  Validate is a pure function: it reports every violated
// field at once instead of stopping at the first problem, so a form
// can mark all bad inputs in a single round trip, and it never touches
// the store.
package validation

import (
	"strings" // strings helps with trimming whitespace
	"time"    // time is used for parsing and comparing timestamps
)

// Seat bounds a driver may offer on a single carpool.
const (
	MinSeats = 1
	MaxSeats = 8
)

// Timestamp layouts accepted for departure_time.  RFC3339 is the
// canonical wire format; the second layout matches what an HTML
// datetime-local input submits.
var departureLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
}

// CarpoolInput carries the raw field values of a proposed carpool as
// submitted by a driver.  DepartureTime stays a string here because
// parseability is itself one of the rules.
type CarpoolInput struct {
	DriverName     string `json:"driver_name"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	AvailableSeats int    `json:"available_seats"`
	Notes          string `json:"notes"`
}

// ParseDeparture parses a departure timestamp using the accepted
// layouts and returns the result in UTC.  It is the single place that
// decides which formats the system accepts.
func ParseDeparture(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range departureLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Validate checks every rule independently and returns a map of field
// name to human-readable message.  An empty map means the candidate is
// acceptable.  The clock is read once per call so all time checks in
// one validation agree.
func Validate(input CarpoolInput) map[string]string {
	errs := make(map[string]string)
	now := time.Now().UTC()

	// Driver name validation
	name := strings.TrimSpace(input.DriverName)
	if name == "" {
		errs["driver_name"] = "Driver name is required"
	} else if len([]rune(name)) < 2 {
		errs["driver_name"] = "Driver name must be at least 2 characters"
	}

	// Destination validation
	dest := strings.TrimSpace(input.Destination)
	if dest == "" {
		errs["destination"] = "Destination is required"
	} else if len([]rune(dest)) < 3 {
		errs["destination"] = "Destination must be at least 3 characters"
	}

	// Departure time validation: required, parseable and strictly in
	// the future at the moment of validation.
	if strings.TrimSpace(input.DepartureTime) == "" {
		errs["departure_time"] = "Departure time is required"
	} else if dep, err := ParseDeparture(input.DepartureTime); err != nil {
		errs["departure_time"] = "Departure time must be a valid timestamp"
	} else if !dep.After(now) {
		errs["departure_time"] = "Departure time must be in the future"
	}

	// Available seats validation
	if input.AvailableSeats < MinSeats || input.AvailableSeats > MaxSeats {
		errs["available_seats"] = "Available seats must be between 1 and 8"
	}

	return errs
}
