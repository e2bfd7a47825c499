package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/solara/venue-reservation/internal/clock"
	"github.com/solara/venue-reservation/internal/model"
	"github.com/solara/venue-reservation/internal/repository"
)

// TxRunner executes fn as one transaction.  The host must guarantee
// that two concurrent admissions against the same target key (event ID
// for seats, day key for the hall) cannot both observe pre-mutation
// state and both commit; the MySQL implementation does this with row
// locks and the hall_date unique key.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// IdentityStore resolves reservation owners.  Absent users are
// reported as (nil, nil), not as an error.
type IdentityStore interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
}

// EventStore provides the event reads and the guarded capacity
// decrement used by seat admission.  FindForUpdate must lock the event
// row for the duration of the enclosing transaction; TakeSeats must
// refuse (return false) rather than let capacity go negative.
type EventStore interface {
	FindForUpdate(ctx context.Context, id uint64) (*model.Event, error)
	TakeSeats(ctx context.Context, id uint64, count int64) (bool, error)
}

// LedgerStore appends to and reads the reservation ledger.  Create
// must fail with repository.ErrHallDateTaken when a hall insert loses
// the uniqueness race.
type LedgerStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	HallDateTaken(ctx context.Context, date string) (bool, error)
}

// ReservationService is the admission engine.  Each Admit method is a
// single read-check-write unit of work: it either commits a complete
// reservation (plus, for seats, the capacity decrement) or changes
// nothing at all.
type ReservationService struct {
	tx     TxRunner
	users  IdentityStore
	events EventStore
	ledger LedgerStore
	clock  clock.Clock
}

// NewReservationService wires the admission engine.  All dependencies
// must be non-nil.
func NewReservationService(tx TxRunner, users IdentityStore, events EventStore, ledger LedgerStore, clk clock.Clock) *ReservationService {
	if tx == nil || users == nil || events == nil || ledger == nil || clk == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{tx: tx, users: users, events: events, ledger: ledger, clock: clk}
}

// AdmitSeatReservation reserves seatCount seats on an event for the
// given owner.  On success it returns the committed reservation and a
// snapshot of the event with its reduced capacity.  Failure modes:
// ErrInvalidRequest (bad arguments or event day passed/today),
// ErrIdentityNotFound, ErrEventNotFound, InsufficientCapacityError.
func (s *ReservationService) AdmitSeatReservation(ctx context.Context, ownerID, eventID uint64, seatCount int64) (*model.Reservation, *model.Event, error) {
	if eventID == 0 || seatCount < 1 {
		return nil, nil, fmt.Errorf("%w: event id and a positive seat count are required", ErrInvalidRequest)
	}

	var (
		res *model.Reservation
		ev  *model.Event
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		owner, err := s.users.FindByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return ErrIdentityNotFound
		}

		ev, err = s.events.FindForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return ErrEventNotFound
		}
		if IsPastOrToday(ev.Date, clock.DayKey(s.clock.Now())) {
			return fmt.Errorf("%w: event date has passed or is today", ErrInvalidRequest)
		}
		if err := CanReserveSeats(ev, seatCount); err != nil {
			return err
		}

		// Price is derived once, at admission time, from the locked
		// event snapshot.
		total := ev.Price * seatCount

		taken, err := s.events.TakeSeats(ctx, eventID, seatCount)
		if err != nil {
			return err
		}
		if !taken {
			return &InsufficientCapacityError{Remaining: ev.GuestsRemaining}
		}
		ev.GuestsRemaining -= seatCount

		id := eventID
		res = &model.Reservation{
			Kind:       model.ReservationKindSeat,
			OwnerID:    owner.ID,
			OwnerEmail: owner.Email,
			EventID:    &id,
			SeatCount:  seatCount,
			TotalPrice: total,
			CreatedAt:  s.clock.Now(),
		}
		return s.ledger.Create(ctx, res)
	})
	if err != nil {
		return nil, nil, err
	}
	return res, ev, nil
}

// AdmitHallReservation books the venue hall for a whole calendar day.
// Failure modes: ErrInvalidRequest (missing fields or the day has
// passed/is today), ErrIdentityNotFound, ErrDateAlreadyReserved.
func (s *ReservationService) AdmitHallReservation(ctx context.Context, ownerID uint64, eventKind, date string, guestCount int64, note string) (*model.Reservation, error) {
	eventKind = strings.TrimSpace(eventKind)
	date = strings.TrimSpace(date)
	if eventKind == "" || date == "" || guestCount < 1 {
		return nil, fmt.Errorf("%w: event kind, date and a positive guest count are required", ErrInvalidRequest)
	}
	if IsPastOrToday(date, clock.DayKey(s.clock.Now())) {
		return nil, fmt.Errorf("%w: requested date has passed or is today", ErrInvalidRequest)
	}

	var res *model.Reservation
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		owner, err := s.users.FindByID(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return ErrIdentityNotFound
		}

		taken, err := s.ledger.HallDateTaken(ctx, date)
		if err != nil {
			return err
		}
		if taken {
			return ErrDateAlreadyReserved
		}

		res = &model.Reservation{
			Kind:       model.ReservationKindHall,
			OwnerID:    owner.ID,
			OwnerEmail: owner.Email,
			EventKind:  eventKind,
			Date:       date,
			GuestCount: guestCount,
			Note:       note,
			CreatedAt:  s.clock.Now(),
		}
		if err := s.ledger.Create(ctx, res); err != nil {
			// The unique key is the backstop for admissions racing in
			// other transactions; the loser surfaces the same error as
			// the pre-check.
			if errors.Is(err, repository.ErrHallDateTaken) {
				return ErrDateAlreadyReserved
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
