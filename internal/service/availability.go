package service

import "github.com/solara/venue-reservation/internal/model"

// Availability rules.  These are pure functions: no side effects, no
// I/O.  Dates are opaque YYYY-MM-DD day keys compared exactly as
// strings; the core performs no timezone normalization.

// CanReserveSeats reports whether count seats are obtainable from the
// event.  A tie (count equals the remaining capacity) succeeds: full
// sellout is allowed.  On failure it returns an
// InsufficientCapacityError carrying the remaining count.
func CanReserveSeats(ev *model.Event, count int64) error {
	if count < 1 || ev.GuestsRemaining < count {
		return &InsufficientCapacityError{Remaining: ev.GuestsRemaining}
	}
	return nil
}

// IsHallDateFree reports whether no existing hall reservation claims
// the exact same day key.
func IsHallDateFree(date string, taken []string) bool {
	for _, d := range taken {
		if d == date {
			return false
		}
	}
	return true
}

// IsPastOrToday reports whether date is strictly before today or is
// today itself.  The YYYY-MM-DD form makes lexicographic comparison
// equivalent to chronological comparison.
func IsPastOrToday(date, today string) bool {
	return date <= today
}
