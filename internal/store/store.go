package store

import (
	"context"

	"github.com/vanklomk/zoo-school-carpool/internal/model"
)

// CarpoolStore is the abstract persistence boundary for carpools.  It
// is the sole writer of persisted state: any seat value a caller has
// read is a snapshot, not ground truth, the instant the call returns.
// Implementations must make ConditionalUpdateSeats atomic with respect
// to the expected-value check, because it is the primitive the
// reservation protocol's compare-and-swap is built on.
type CarpoolStore interface {
	// Create persists a new carpool, assigns its ID and fills in the
	// store-generated fields on the passed record.
	Create(ctx context.Context, cp *model.Carpool) error

	// GetByID returns a single carpool or ErrCarpoolNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Carpool, error)

	// List returns all carpools ordered by departure time ascending,
	// ties broken by ID ascending.  The ordering is deterministic so
	// list and calendar views agree.
	List(ctx context.Context) ([]model.Carpool, error)

	// ConditionalUpdateSeats sets available_seats to next only if the
	// persisted value still equals expected.  It returns
	// ErrSeatConflict when the expected value is stale and
	// ErrCarpoolNotFound when the ID is unknown.
	ConditionalUpdateSeats(ctx context.Context, id uint64, expected, next int) error
}
