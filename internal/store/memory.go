package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vanklomk/zoo-school-carpool/internal/model"
)

// MemoryStore is an in-memory CarpoolStore used for tests and for
// running the server without a database.  It honours the same
// semantics as the MySQL repository: IDs are assigned on create, List
// ordering is deterministic and ConditionalUpdateSeats is atomic with
// respect to the expected-value check.  The mutex is an implementation
// detail of this store; callers still synchronise exclusively through
// the conditional-update primitive.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   uint64
	carpools map[uint64]*model.Carpool
}

// NewMemoryStore returns an empty MemoryStore ready for use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		carpools: make(map[uint64]*model.Carpool),
	}
}

// Create assigns the next ID, stamps timestamps and stores a copy of
// the record.  SeatCapacity defaults to the initial seat count when
// the caller leaves it unset.
func (s *MemoryStore) Create(ctx context.Context, cp *model.Carpool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp.ID = s.nextID
	s.nextID++
	if cp.SeatCapacity == 0 {
		cp.SeatCapacity = cp.AvailableSeats
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	stored := *cp
	s.carpools[cp.ID] = &stored
	return nil
}

// GetByID returns a copy of the carpool so callers never share memory
// with the stored record.
func (s *MemoryStore) GetByID(ctx context.Context, id uint64) (*model.Carpool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.carpools[id]
	if !ok {
		return nil, ErrCarpoolNotFound
	}
	out := *cp
	return &out, nil
}

// List returns all carpools ordered by departure time ascending, ties
// broken by ID ascending.
func (s *MemoryStore) List(ctx context.Context) ([]model.Carpool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Carpool, 0, len(s.carpools))
	for _, cp := range s.carpools {
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DepartureTime.Equal(out[j].DepartureTime) {
			return out[i].DepartureTime.Before(out[j].DepartureTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ConditionalUpdateSeats applies the compare-and-swap: the update
// commits only while the lock is held and only if the persisted count
// still equals expected.
func (s *MemoryStore) ConditionalUpdateSeats(ctx context.Context, id uint64, expected, next int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.carpools[id]
	if !ok {
		return ErrCarpoolNotFound
	}
	if cp.AvailableSeats != expected {
		return ErrSeatConflict
	}
	cp.AvailableSeats = next
	cp.UpdatedAt = time.Now().UTC()
	return nil
}
