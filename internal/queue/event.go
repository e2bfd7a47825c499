// Package queue defines the messages exchanged over the broker and the
// publisher/consumer pair for reservation confirmations.
package queue

// ReservationConfirmedEvent is published after an admission commits.
// It carries enough for downstream consumers (notifications, booking
// log, analytics) to act without querying the primary database.  Seat
// and hall confirmations share the payload; unused fields are omitted.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Kind          string `json:"kind"` // "seat" or "hall"
	OwnerID       uint64 `json:"owner_id"`
	OwnerEmail    string `json:"owner_email"`
	EventID       uint64 `json:"event_id,omitempty"`
	EventTitle    string `json:"event_title,omitempty"`
	SeatCount     int64  `json:"seat_count,omitempty"`
	TotalPrice    int64  `json:"total_price,omitempty"`
	EventKind     string `json:"event_kind,omitempty"`
	Date          string `json:"date,omitempty"`
	GuestCount    int64  `json:"guest_count,omitempty"`
	ConfirmedAt   string `json:"confirmed_at"`
}
