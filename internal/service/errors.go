// Package service contains the reservation core: the pure availability
// checker, the admission engine that commits reservations, and the
// read-side query views.  All failures here are expected, recoverable
// conditions; the admission engine guarantees that none of them leaves
// a partial write behind.
package service

import (
	"errors"
	"fmt"
)

// ErrIdentityNotFound is returned when the owner ID does not resolve
// to a registered user.
var ErrIdentityNotFound = errors.New("identity not found")

// ErrEventNotFound is returned when a seat admission targets a
// nonexistent event.
var ErrEventNotFound = errors.New("event not found")

// ErrInvalidRequest is returned when required fields are missing or
// zero-valued, including dates that are past or same-day.  Specific
// causes wrap this sentinel so the boundary can show a precise message
// while matching with errors.Is.
var ErrInvalidRequest = errors.New("invalid reservation request")

// ErrDateAlreadyReserved is returned when the requested hall date is
// already claimed.  The boundary must keep it distinct from capacity
// failures: the user fixes it by picking another date, not fewer seats.
var ErrDateAlreadyReserved = errors.New("date already reserved")

// InsufficientCapacityError is returned when an event cannot satisfy
// the requested seat count.  It carries the remaining capacity so the
// message can tell the user how many seats are actually left.
type InsufficientCapacityError struct {
	Remaining int64
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d seats remaining", e.Remaining)
}
