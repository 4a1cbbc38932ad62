// Package store defines the persistence boundary for carpools.  The
// CarpoolStore interface is the only path through which carpool state
// is read or mutated; the sentinel errors declared here let higher
// layers such as handlers distinguish between different failure
// scenarios.  For example, ErrCarpoolNotFound indicates that no
// carpool with the requested ID exists, while ErrSeatConflict signals
// that a conditional seat update lost a race to another writer and
// the caller's view of the seat count is stale.
package store

import "errors"

// ErrCarpoolNotFound is returned when an operation references a
// carpool ID that does not exist in the store. Handlers should
// translate this into an HTTP 404 response.
var ErrCarpoolNotFound = errors.New("carpool not found")

// ErrSeatConflict is returned when a conditional seat update finds
// that the persisted seat count no longer matches the expected value,
// meaning another rider committed first. Handlers should translate
// this into an HTTP 409 response after at most one re-read and retry.
var ErrSeatConflict = errors.New("seat count conflict")
