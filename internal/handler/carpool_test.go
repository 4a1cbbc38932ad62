package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/vanklomk/zoo-school-carpool/internal/handler"
	"github.com/vanklomk/zoo-school-carpool/internal/model"
	"github.com/vanklomk/zoo-school-carpool/internal/reservation"
	"github.com/vanklomk/zoo-school-carpool/internal/router"
	"github.com/vanklomk/zoo-school-carpool/internal/store"
)

// newTestServer wires an Echo instance against the in-memory store the
// same way main does, minus Redis and the event publisher.
func newTestServer(t *testing.T) (*echo.Echo, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	h := handler.NewCarpoolHandler(s, reservation.NewService(s))
	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCarpools(e, h, nil)
	return e, s
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createBody(driver, destination string, departure time.Time, seats int) string {
	return fmt.Sprintf(`{"driver_name":%q,"destination":%q,"departure_time":%q,"available_seats":%d,"notes":"  after practice  "}`,
		driver, destination, departure.Format(time.RFC3339), seats)
}

// TestCreateCarpool_valid verifies that a valid offer is persisted and
// returned with an assigned ID and trimmed text fields.
func TestCreateCarpool_valid(t *testing.T) {
	e, _ := newTestServer(t)
	departure := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)

	rec := doJSON(e, http.MethodPost, "/v1/carpools",
		`{"driver_name":"  Morgan ","destination":" Zoo Atlanta ","departure_time":"`+
			departure.Format(time.RFC3339)+`","available_seats":4,"notes":" gate B "}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var cp model.Carpool
	decode(t, rec, &cp)
	require.NotZero(t, cp.ID)
	require.Equal(t, "Morgan", cp.DriverName)
	require.Equal(t, "Zoo Atlanta", cp.Destination)
	require.Equal(t, "gate B", cp.Notes)
	require.Equal(t, 4, cp.AvailableSeats)
	require.Equal(t, 4, cp.SeatCapacity)
	require.True(t, cp.DepartureTime.Equal(departure))
}

// TestCreateCarpool_invalid verifies that validation failures come back
// as a per-field map and that nothing reaches the store.
func TestCreateCarpool_invalid(t *testing.T) {
	e, s := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/carpools",
		`{"driver_name":"A","destination":"Zoo Atlanta","departure_time":"2020-01-01T08:00:00Z","available_seats":4}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Errors, 2)
	require.Contains(t, body.Errors, "driver_name")
	require.Contains(t, body.Errors, "departure_time")

	stored, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, stored)
}

// TestListCarpools_orderAndEmpty verifies the empty-list response and
// the departure-time ordering regardless of creation order.
func TestListCarpools_orderAndEmpty(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/carpools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var empty struct {
		Items []model.Carpool `json:"items"`
	}
	decode(t, rec, &empty)
	require.NotNil(t, empty.Items)
	require.Empty(t, empty.Items)

	later := time.Now().UTC().Add(72 * time.Hour)
	earlier := time.Now().UTC().Add(24 * time.Hour)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", later, 2)).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Jamie", "Aquarium", earlier, 3)).Code)

	rec = doJSON(e, http.MethodGet, "/v1/carpools", "")
	var listed struct {
		Items []model.Carpool `json:"items"`
	}
	decode(t, rec, &listed)
	require.Len(t, listed.Items, 2)
	require.Equal(t, "Jamie", listed.Items[0].DriverName)
	require.Equal(t, "Morgan", listed.Items[1].DriverName)
}

// TestJoinCarpool_happyPath verifies that an accurate observation
// consumes one seat and returns the committed record.
func TestJoinCarpool_happyPath(t *testing.T) {
	e, s := newTestServer(t)
	departure := time.Now().UTC().Add(24 * time.Hour)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", departure, 3)).Code)

	rec := doJSON(e, http.MethodPost, "/v1/carpools/1/join", `{"observed_seats":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var cp model.Carpool
	decode(t, rec, &cp)
	require.Equal(t, 2, cp.AvailableSeats)

	fresh, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, fresh.AvailableSeats)
}

// TestJoinCarpool_staleObservationRetriesOnce verifies the bounded
// retry: a stale observation triggers one re-read and the rider still
// gets a seat when one remains.
func TestJoinCarpool_staleObservationRetriesOnce(t *testing.T) {
	e, s := newTestServer(t)
	departure := time.Now().UTC().Add(24 * time.Hour)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", departure, 3)).Code)

	// Another rider commits first, invalidating the observation of 3.
	require.NoError(t, s.ConditionalUpdateSeats(context.Background(), 1, 3, 2))

	rec := doJSON(e, http.MethodPost, "/v1/carpools/1/join", `{"observed_seats":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var cp model.Carpool
	decode(t, rec, &cp)
	require.Equal(t, 1, cp.AvailableSeats)
}

// TestJoinCarpool_full verifies the full-carpool outcome: a stale
// observer of the last seat ends at 409 with no negative count.
func TestJoinCarpool_full(t *testing.T) {
	e, s := newTestServer(t)
	departure := time.Now().UTC().Add(24 * time.Hour)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", departure, 1)).Code)
	require.NoError(t, s.ConditionalUpdateSeats(context.Background(), 1, 1, 0))

	rec := doJSON(e, http.MethodPost, "/v1/carpools/1/join", `{"observed_seats":1}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	fresh, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, fresh.AvailableSeats)
}

// TestJoinCarpool_zeroObservation verifies that an observation of zero
// seats is rejected without consuming anything.
func TestJoinCarpool_zeroObservation(t *testing.T) {
	e, _ := newTestServer(t)
	departure := time.Now().UTC().Add(24 * time.Hour)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", departure, 2)).Code)

	rec := doJSON(e, http.MethodPost, "/v1/carpools/1/join", `{"observed_seats":0}`)

	require.Equal(t, http.StatusConflict, rec.Code)
}

// TestJoinCarpool_notFound verifies the 404 mapping for unknown IDs.
func TestJoinCarpool_notFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/carpools/42/join", `{"observed_seats":2}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestCarpoolsOnDate verifies the calendar day view: same UTC day
// matches regardless of time of day, other days are excluded, and a
// malformed date is a 400.
func TestCarpoolsOnDate(t *testing.T) {
	e, _ := newTestServer(t)
	onDay := time.Date(2030, 5, 1, 22, 30, 0, 0, time.UTC)
	offDay := time.Date(2030, 5, 2, 8, 0, 0, 0, time.UTC)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", onDay, 2)).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/v1/carpools", createBody("Jamie", "Aquarium", offDay, 2)).Code)

	rec := doJSON(e, http.MethodGet, "/v1/carpools/calendar/2030-05-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Date  string          `json:"date"`
		Items []model.Carpool `json:"items"`
	}
	decode(t, rec, &body)
	require.Equal(t, "2030-05-01", body.Date)
	require.Len(t, body.Items, 1)
	require.Equal(t, "Morgan", body.Items[0].DriverName)

	rec = doJSON(e, http.MethodGet, "/v1/carpools/calendar/May-1st", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestCarpoolDates verifies the highlight feed: distinct sorted days
// derived from the current carpool list.
func TestCarpoolDates(t *testing.T) {
	e, _ := newTestServer(t)
	dayOne := time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC)
	dayOneLater := time.Date(2030, 5, 1, 17, 0, 0, 0, time.UTC)
	dayThree := time.Date(2030, 5, 3, 8, 0, 0, 0, time.UTC)
	for _, dep := range []time.Time{dayThree, dayOne, dayOneLater} {
		require.Equal(t, http.StatusCreated,
			doJSON(e, http.MethodPost, "/v1/carpools", createBody("Morgan", "Zoo Atlanta", dep, 2)).Code)
	}

	rec := doJSON(e, http.MethodGet, "/v1/carpools/calendar", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Dates []string `json:"dates"`
	}
	decode(t, rec, &body)
	require.Equal(t, []string{"2030-05-01", "2030-05-03"}, body.Dates)
}
