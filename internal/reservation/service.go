// Package reservation implements the seat-admission protocol.  A join
// is a compare-and-swap, not a blind decrement-after-read: the seat
// count the rider observed acts as a version token, and a stale token
// is rejected rather than silently applied.  Without this, two riders
// who both saw one seat left could each decrement and over-book the
// carpool.
package reservation

import (
	"context"
	"errors"

	"github.com/vanklomk/zoo-school-carpool/internal/store"
)

// ErrSeatsExhausted is returned when a join cannot consume a seat
// because none are available.  It is a normal full-capacity outcome,
// not a failure; callers should not retry.
var ErrSeatsExhausted = errors.New("no seats available")

// ErrVersionConflict is returned when another rider committed between
// the caller's read and its join.  It is benign and expected under
// contention; the caller may re-read and retry once with fresh data,
// but must not loop.
var ErrVersionConflict = errors.New("observed seat count is stale")

// ErrCarpoolNotFound mirrors the store sentinel so callers depend on
// this package alone for the join outcome taxonomy.
var ErrCarpoolNotFound = store.ErrCarpoolNotFound

// Service orchestrates joining a carpool through the store's atomic
// conditional update.  It holds no seat state of its own: every seat
// value it handles lives only for the scope of a single call.
type Service struct {
	store store.CarpoolStore
}

// NewService returns a Service bound to the given store.
func NewService(s store.CarpoolStore) *Service {
	if s == nil {
		panic("nil store passed to reservation.NewService")
	}
	return &Service{store: s}
}

// Join claims one seat on the carpool identified by id.  It succeeds
// only if the persisted seat count still equals observedSeats and is
// greater than zero; on success it commits observedSeats-1 and returns
// that value.
//
// Outcomes:
//   - ErrSeatsExhausted when observedSeats <= 0; the store is not
//     touched, a full carpool is terminal for this attempt.
//   - ErrVersionConflict when the persisted count differs from
//     observedSeats.  The caller may re-read and retry once.
//   - ErrCarpoolNotFound when the ID is unknown.
//
// Exactly one concurrent Join can succeed per unit of available
// capacity because each success consumes a distinct expected value.
func (s *Service) Join(ctx context.Context, id uint64, observedSeats int) (int, error) {
	if observedSeats <= 0 {
		return 0, ErrSeatsExhausted
	}
	next := observedSeats - 1
	if err := s.store.ConditionalUpdateSeats(ctx, id, observedSeats, next); err != nil {
		switch {
		case errors.Is(err, store.ErrSeatConflict):
			return 0, ErrVersionConflict
		case errors.Is(err, store.ErrCarpoolNotFound):
			return 0, ErrCarpoolNotFound
		default:
			return 0, err
		}
	}
	return next, nil
}
