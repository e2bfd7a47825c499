package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solara/venue-reservation/internal/clock"
	"github.com/solara/venue-reservation/internal/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) // today is 2025-06-15

func newTestService(users []model.User, events []model.Event) (*ReservationService, *fakeStore) {
	store := newFakeStore(users, events)
	svc := NewReservationService(store, store, store, store, clock.Fixed(testNow))
	return svc, store
}

func testUsers() []model.User {
	return []model.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com", Role: model.RoleCustomer},
		{ID: 2, Name: "Luis", Email: "luis@example.com", Role: model.RoleCustomer},
	}
}

func TestAdmitSeatReservation(t *testing.T) {
	t.Parallel()

	event := model.Event{
		ID: 10, Title: "Summer Concert", Date: "2025-07-01",
		Place: "Main Garden", GuestsRemaining: 5, Price: 100, Kind: model.EventKindPublic,
	}

	t.Run("exact sellout succeeds", func(t *testing.T) {
		svc, store := newTestService(testUsers(), []model.Event{event})

		res, ev, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 5)
		require.NoError(t, err)

		require.Equal(t, model.ReservationKindSeat, res.Kind)
		require.Equal(t, uint64(1), res.OwnerID)
		require.Equal(t, "ana@example.com", res.OwnerEmail)
		require.NotNil(t, res.EventID)
		require.Equal(t, uint64(10), *res.EventID)
		require.Equal(t, int64(5), res.SeatCount)
		require.Equal(t, int64(500), res.TotalPrice)
		require.Equal(t, testNow, res.CreatedAt)

		require.Equal(t, int64(0), ev.GuestsRemaining)
		require.Equal(t, int64(0), store.events[10].GuestsRemaining)
		require.Len(t, store.ledger, 1)
	})

	t.Run("rejects when sold out", func(t *testing.T) {
		soldOut := event
		soldOut.GuestsRemaining = 0
		svc, store := newTestService(testUsers(), []model.Event{soldOut})

		_, _, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 1)
		var capErr *InsufficientCapacityError
		require.ErrorAs(t, err, &capErr)
		require.Equal(t, int64(0), capErr.Remaining)

		require.Equal(t, int64(0), store.events[10].GuestsRemaining)
		require.Empty(t, store.ledger)
	})

	t.Run("capacity failure leaves state untouched", func(t *testing.T) {
		small := event
		small.GuestsRemaining = 2
		svc, store := newTestService(testUsers(), []model.Event{small})

		_, _, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 3)
		var capErr *InsufficientCapacityError
		require.ErrorAs(t, err, &capErr)
		require.Equal(t, int64(2), capErr.Remaining)

		require.Equal(t, small, store.events[10])
		require.Empty(t, store.ledger)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, store := newTestService(testUsers(), []model.Event{event})

		_, _, err := svc.AdmitSeatReservation(context.Background(), 1, 999, 1)
		require.ErrorIs(t, err, ErrEventNotFound)
		require.Empty(t, store.ledger)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc, store := newTestService(testUsers(), []model.Event{event})

		_, _, err := svc.AdmitSeatReservation(context.Background(), 99, 10, 1)
		require.ErrorIs(t, err, ErrIdentityNotFound)
		require.Empty(t, store.ledger)
		require.Equal(t, event, store.events[10])
	})

	t.Run("rejects same-day event", func(t *testing.T) {
		sameDay := event
		sameDay.Date = "2025-06-15"
		svc, store := newTestService(testUsers(), []model.Event{sameDay})

		_, _, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 1)
		require.ErrorIs(t, err, ErrInvalidRequest)
		require.Empty(t, store.ledger)
	})

	t.Run("rejects zero seat count", func(t *testing.T) {
		svc, _ := newTestService(testUsers(), []model.Event{event})

		_, _, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 0)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("price treated as zero when unset", func(t *testing.T) {
		free := event
		free.Price = 0
		svc, _ := newTestService(testUsers(), []model.Event{free})

		res, _, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 3)
		require.NoError(t, err)
		require.Equal(t, int64(0), res.TotalPrice)
	})
}

func TestAdmitSeatReservationNoOverselling(t *testing.T) {
	t.Parallel()

	const capacity = 10
	event := model.Event{
		ID: 10, Title: "Summer Concert", Date: "2025-07-01",
		GuestsRemaining: capacity, Price: 50, Kind: model.EventKindPublic,
	}
	svc, store := newTestService(testUsers(), []model.Event{event})

	const callers = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int64
		rejected int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := svc.AdmitSeatReservation(context.Background(), 1, 10, 1)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				var capErr *InsufficientCapacityError
				require.ErrorAs(t, err, &capErr)
				rejected++
				return
			}
			admitted += res.SeatCount
		}()
	}
	wg.Wait()

	require.Equal(t, int64(capacity), admitted)
	require.Equal(t, callers-capacity, rejected)
	require.Equal(t, int64(0), store.events[10].GuestsRemaining)

	var committed int64
	for _, res := range store.ledger {
		committed += res.SeatCount
	}
	require.Equal(t, int64(capacity), committed)
}

func TestAdmitHallReservation(t *testing.T) {
	t.Parallel()

	t.Run("books a free date", func(t *testing.T) {
		svc, store := newTestService(testUsers(), nil)

		res, err := svc.AdmitHallReservation(context.Background(), 1, "wedding", "2025-12-24", 50, "garden ceremony")
		require.NoError(t, err)

		require.Equal(t, model.ReservationKindHall, res.Kind)
		require.Equal(t, "ana@example.com", res.OwnerEmail)
		require.Equal(t, "2025-12-24", res.Date)
		require.Equal(t, int64(50), res.GuestCount)
		require.Equal(t, "garden ceremony", res.Note)
		require.Nil(t, res.EventID)
		require.Equal(t, testNow, res.CreatedAt)
		require.Len(t, store.ledger, 1)
	})

	t.Run("second booking for the same date loses", func(t *testing.T) {
		svc, store := newTestService(testUsers(), nil)

		_, err := svc.AdmitHallReservation(context.Background(), 1, "wedding", "2025-12-24", 50, "")
		require.NoError(t, err)

		_, err = svc.AdmitHallReservation(context.Background(), 2, "birthday", "2025-12-24", 20, "")
		require.ErrorIs(t, err, ErrDateAlreadyReserved)
		require.Len(t, store.ledger, 1)
		require.Equal(t, uint64(1), store.ledger[0].OwnerID)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc, store := newTestService(testUsers(), nil)

		_, err := svc.AdmitHallReservation(context.Background(), 1, "", "2025-12-24", 50, "")
		require.ErrorIs(t, err, ErrInvalidRequest)

		_, err = svc.AdmitHallReservation(context.Background(), 1, "wedding", "", 50, "")
		require.ErrorIs(t, err, ErrInvalidRequest)

		_, err = svc.AdmitHallReservation(context.Background(), 1, "wedding", "2025-12-24", 0, "")
		require.ErrorIs(t, err, ErrInvalidRequest)

		require.Empty(t, store.ledger)
	})

	t.Run("past and same-day dates rejected", func(t *testing.T) {
		svc, _ := newTestService(testUsers(), nil)

		_, err := svc.AdmitHallReservation(context.Background(), 1, "wedding", "2025-06-14", 10, "")
		require.ErrorIs(t, err, ErrInvalidRequest)

		_, err = svc.AdmitHallReservation(context.Background(), 1, "wedding", "2025-06-15", 10, "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc, store := newTestService(testUsers(), nil)

		_, err := svc.AdmitHallReservation(context.Background(), 99, "wedding", "2025-12-24", 10, "")
		require.ErrorIs(t, err, ErrIdentityNotFound)
		require.Empty(t, store.ledger)
	})
}

func TestAdmitHallReservationExclusive(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(testUsers(), nil)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		lost      int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AdmitHallReservation(context.Background(), 1, "wedding", "2025-12-24", 30, "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrDateAlreadyReserved):
				lost++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, succeeded)
	require.Equal(t, callers-1, lost)
	require.Len(t, store.ledger, 1)
}
