package model

import "time"

// Reservation variant tags.  Every row carries exactly one of these;
// code must branch on the tag, never on which optional fields happen
// to be populated.
const (
	ReservationKindSeat = "seat"
	ReservationKindHall = "hall"
)

// Reservation is a committed ledger entry: either a seat purchase
// against an Event or a whole-day booking of the venue hall.  A
// reservation is immutable once created.  The two variants share the
// owner fields and CreatedAt; the remaining fields belong to one
// variant each and are nil/zero on the other.
//
// Common fields:
//  ID         – primary key identifier.
//  Kind       – variant tag ("seat" or "hall").
//  OwnerID    – user who made the reservation.
//  OwnerEmail – email snapshot taken at admission time.
//  CreatedAt  – immutable creation timestamp (UTC).
//
// Seat variant:
//  EventID    – event the seats belong to.
//  SeatCount  – number of seats purchased (>= 1).
//  TotalPrice – event price * seat count, evaluated at admission.
//
// Hall variant:
//  EventKind  – free-text occasion (wedding, birthday, ...).
//  Date       – requested calendar day key (YYYY-MM-DD).
//  GuestCount – expected number of guests (>= 1).
//  Note       – optional message from the customer.
type Reservation struct {
	ID         uint64    `json:"id"`                   // reservations.id
	Kind       string    `json:"kind"`                 // reservations.kind
	OwnerID    uint64    `json:"ownerId"`              // reservations.owner_id
	OwnerEmail string    `json:"ownerEmail"`           // reservations.owner_email
	EventID    *uint64   `json:"eventId,omitempty"`    // reservations.event_id (seat only)
	SeatCount  int64     `json:"seatCount,omitempty"`  // reservations.seat_count (seat only)
	TotalPrice int64     `json:"totalPrice,omitempty"` // reservations.total_price (seat only)
	EventKind  string    `json:"eventKind,omitempty"`  // reservations.event_kind (hall only)
	Date       string    `json:"date,omitempty"`       // reservations.hall_date (hall only)
	GuestCount int64     `json:"guestCount,omitempty"` // reservations.guest_count (hall only)
	Note       string    `json:"note,omitempty"`       // reservations.note (hall only)
	CreatedAt  time.Time `json:"createdAt"`            // reservations.created_at
}

// IsSeat reports whether the reservation is a seat purchase.
func (r *Reservation) IsSeat() bool { return r.Kind == ReservationKindSeat }

// IsHall reports whether the reservation is a hall booking.
func (r *Reservation) IsHall() bool { return r.Kind == ReservationKindHall }
