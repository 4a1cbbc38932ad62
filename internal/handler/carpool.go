package handler

import (
	"context"  // background context for fire-and-forget event publishing
	"errors"   // for errors.Is comparisons
	"log"      // request-scoped operational logging
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"strings"  // trimming user-submitted fields
	"time"     // working with timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/vanklomk/zoo-school-carpool/internal/calendar"
	"github.com/vanklomk/zoo-school-carpool/internal/model"
	"github.com/vanklomk/zoo-school-carpool/internal/queue"
	"github.com/vanklomk/zoo-school-carpool/internal/reservation"
	"github.com/vanklomk/zoo-school-carpool/internal/store"
	"github.com/vanklomk/zoo-school-carpool/internal/validation"
)

// CarpoolHandler exposes the carpool core to the presentation layer:
// listing trips, creating trips, joining trips and the calendar views.
// It reads and writes exclusively through the store and the
// reservation service; it keeps no trip state of its own, so every
// response is re-derived from committed data.
type CarpoolHandler struct {
	Store        store.CarpoolStore   // persistence boundary for reads and creation
	Reservations *reservation.Service // seat-admission protocol for joins

	// Publish sends a SeatClaimedEvent after a successful join.  It is
	// optional; when nil no event is emitted.  Failures are logged and
	// ignored so a broker outage never blocks a rider.
	Publish func(ctx context.Context, event queue.SeatClaimedEvent) error
}

// NewCarpoolHandler constructs a CarpoolHandler with the provided
// dependencies.  Store and reservation service must be non-nil.
func NewCarpoolHandler(s store.CarpoolStore, r *reservation.Service) *CarpoolHandler {
	if s == nil || r == nil {
		panic("nil dependency passed to NewCarpoolHandler")
	}
	return &CarpoolHandler{Store: s, Reservations: r}
}

// ListCarpools handles GET /v1/carpools.  It returns every carpool
// ordered by departure time ascending.  When no carpools exist, it
// returns an empty array.
func (h *CarpoolHandler) ListCarpools(c echo.Context) error {
	carpools, err := h.Store.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load carpools"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": carpools})
}

// CreateCarpool handles POST /v1/carpools and registers a new ride
// offer.  The request body carries the raw form fields; every
// validation rule is evaluated so all violated fields are reported
// together.  Validation failures never reach the store.
func (h *CarpoolHandler) CreateCarpool(c echo.Context) error {
	var body validation.CarpoolInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := validation.Validate(body); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}
	// Validation guarantees the timestamp parses.
	departure, err := validation.ParseDeparture(body.DepartureTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": echo.Map{
			"departure_time": "Departure time must be a valid timestamp",
		}})
	}
	cp := &model.Carpool{
		DriverName:     strings.TrimSpace(body.DriverName),
		Destination:    strings.TrimSpace(body.Destination),
		DepartureTime:  departure,
		AvailableSeats: body.AvailableSeats,
		SeatCapacity:   body.AvailableSeats,
		Notes:          strings.TrimSpace(body.Notes),
	}
	if err := h.Store.Create(c.Request().Context(), cp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create carpool"})
	}
	return c.JSON(http.StatusCreated, cp)
}

// JoinCarpool handles POST /v1/carpools/:id/join.  The body carries
// the seat count the rider observed, which acts as a version token for
// the compare-and-swap admission.  On a version conflict the handler
// re-reads the carpool and retries exactly once with fresh data; it
// never loops, so contending riders cannot starve each other.
func (h *CarpoolHandler) JoinCarpool(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid carpool id"})
	}
	var body struct {
		ObservedSeats int `json:"observed_seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	_, err = h.Reservations.Join(ctx, id, body.ObservedSeats)
	if errors.Is(err, reservation.ErrVersionConflict) {
		// Single bounded retry: re-read the committed seat count and
		// attempt the swap once more.
		fresh, readErr := h.Store.GetByID(ctx, id)
		if readErr != nil {
			return h.joinFailure(c, readErr)
		}
		_, err = h.Reservations.Join(ctx, id, fresh.AvailableSeats)
	}
	if err != nil {
		return h.joinFailure(c, err)
	}

	// Return the committed record rather than echoing arithmetic done
	// on the caller's snapshot.
	joined, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return h.joinFailure(c, err)
	}

	if h.Publish != nil {
		event := queue.SeatClaimedEvent{
			CarpoolID:     joined.ID,
			DriverName:    joined.DriverName,
			Destination:   joined.Destination,
			DepartureTime: joined.DepartureTime.UTC().Format(time.RFC3339),
			SeatsLeft:     joined.AvailableSeats,
			SeatCapacity:  joined.SeatCapacity,
			ClaimedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			if err := h.Publish(context.Background(), event); err != nil {
				log.Printf("carpool-join: publish event failed: %v", err)
			}
		}()
	}
	return c.JSON(http.StatusOK, joined)
}

// joinFailure maps the reservation outcome taxonomy onto HTTP
// responses so callers can distinguish "no seats" from "stale view"
// from "bad id".
func (h *CarpoolHandler) joinFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, reservation.ErrSeatsExhausted):
		return c.JSON(http.StatusConflict, echo.Map{"error": "no seats available"})
	case errors.Is(err, reservation.ErrVersionConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat count changed, please refresh"})
	case errors.Is(err, store.ErrCarpoolNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "carpool not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to join carpool"})
	}
}

// CarpoolsOnDate handles GET /v1/carpools/calendar/:date.  The path
// parameter is a YYYY-MM-DD day; the response contains the carpools
// departing on that UTC calendar day regardless of time of day.
func (h *CarpoolHandler) CarpoolsOnDate(c echo.Context) error {
	date, err := time.Parse(calendar.DateLayout, c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	carpools, err := h.Store.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load carpools"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date.Format(calendar.DateLayout),
		"items": calendar.CarpoolsOnDate(date, carpools),
	})
}

// CarpoolDates handles GET /v1/carpools/calendar.  It returns the
// distinct days that have at least one departure, for highlighting in
// a calendar view.  The set is recomputed from the store on every call.
func (h *CarpoolHandler) CarpoolDates(c echo.Context) error {
	carpools, err := h.Store.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load carpools"})
	}
	return c.JSON(http.StatusOK, echo.Map{"dates": calendar.DatesWithCarpools(carpools)})
}
