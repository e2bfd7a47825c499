package model

import "time"

// Event kinds as stored in the `events.kind` column.
const (
	EventKindPublic  = "public"
	EventKindPrivate = "private"
)

// Event is a bookable gathering with a finite seat pool.  The JSON
// field names form the contract consumed by the presentation layer
// and must not change.  GuestsRemaining never goes negative: it only
// decreases through a committed seat reservation and only increases
// through an administrative edit.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – display title of the event.
//  Date            – calendar day key (YYYY-MM-DD, no time component).
//  Place           – free-text location.
//  GuestsRemaining – seats still available for purchase.
//  Price           – per-seat price in whole currency units (>= 0).
//  Kind            – "public" or "private".
type Event struct {
	ID              uint64    `json:"id"`              // events.id
	Title           string    `json:"title"`           // events.title
	Date            string    `json:"date"`            // events.event_date
	Place           string    `json:"place"`           // events.place
	GuestsRemaining int64     `json:"guestsRemaining"` // events.guests_remaining
	Price           int64     `json:"price"`           // events.price
	Kind            string    `json:"kind"`            // events.kind
	CreatedAt       time.Time `json:"createdAt"`       // events.created_at
	UpdatedAt       time.Time `json:"updatedAt"`       // events.updated_at
}
