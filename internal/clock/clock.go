// Package clock abstracts the time source so the admission service can
// be tested against a fixed instant.
package clock

import "time"

// Clock yields the current time in UTC.
type Clock interface {
	Now() time.Time
}

// DayKey formats an instant as the opaque calendar-day key used for
// event and hall dates (YYYY-MM-DD, UTC).
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

type systemClock struct{}

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type fixedClock struct{ t time.Time }

// Fixed returns a Clock pinned to the given instant, for tests.
func Fixed(t time.Time) Clock { return fixedClock{t: t.UTC()} }

func (f fixedClock) Now() time.Time { return f.t }
