package service

import (
	"context"

	"github.com/solara/venue-reservation/internal/model"
)

// LedgerReader is the read-side view of the reservation ledger.
type LedgerReader interface {
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListHallDates(ctx context.Context) ([]string, error)
}

// AllReservations partitions the full ledger by variant tag for the
// admin view.
type AllReservations struct {
	HallReservations []model.Reservation `json:"hallReservations"`
	SeatReservations []model.Reservation `json:"seatReservations"`
}

// ReservationQueries builds the read-side views over the ledger.  It
// only reads; stale capacity numbers on referenced events are
// acceptable for display.  Role enforcement for ListAll lives at the
// boundary: callers must have verified an admin role claim before
// invoking it.
type ReservationQueries struct {
	ledger LedgerReader
}

// NewReservationQueries returns the query service over the given ledger.
func NewReservationQueries(ledger LedgerReader) *ReservationQueries {
	if ledger == nil {
		panic("nil ledger passed to NewReservationQueries")
	}
	return &ReservationQueries{ledger: ledger}
}

// ListMine returns the caller's reservations in creation order, both
// variants mixed; presentation filters by the kind tag if needed.
func (q *ReservationQueries) ListMine(ctx context.Context, ownerID uint64) ([]model.Reservation, error) {
	return q.ledger.ListByOwner(ctx, ownerID)
}

// ListAll returns every reservation, split into hall and seat groups.
// Partitioning reads the explicit kind tag only.
func (q *ReservationQueries) ListAll(ctx context.Context) (*AllReservations, error) {
	all, err := q.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := &AllReservations{
		HallReservations: make([]model.Reservation, 0),
		SeatReservations: make([]model.Reservation, 0),
	}
	for _, res := range all {
		if res.IsHall() {
			out.HallReservations = append(out.HallReservations, res)
		} else {
			out.SeatReservations = append(out.SeatReservations, res)
		}
	}
	return out, nil
}

// ListTakenHallDates projects the day keys already claimed by hall
// reservations, for rendering occupied dates.
func (q *ReservationQueries) ListTakenHallDates(ctx context.Context) ([]string, error) {
	return q.ledger.ListHallDates(ctx)
}
