package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solara/venue-reservation/internal/model"
)

func seededLedger() *fakeStore {
	store := newFakeStore(nil, nil)
	eventID := uint64(10)
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	store.ledger = []model.Reservation{
		{ID: 1, Kind: model.ReservationKindSeat, OwnerID: 1, OwnerEmail: "ana@example.com",
			EventID: &eventID, SeatCount: 2, TotalPrice: 200, CreatedAt: created},
		{ID: 2, Kind: model.ReservationKindHall, OwnerID: 2, OwnerEmail: "luis@example.com",
			EventKind: "wedding", Date: "2025-12-24", GuestCount: 80, CreatedAt: created},
		{ID: 3, Kind: model.ReservationKindSeat, OwnerID: 2, OwnerEmail: "luis@example.com",
			EventID: &eventID, SeatCount: 1, TotalPrice: 100, CreatedAt: created},
		{ID: 4, Kind: model.ReservationKindHall, OwnerID: 1, OwnerEmail: "ana@example.com",
			EventKind: "birthday", Date: "2025-11-02", GuestCount: 25, CreatedAt: created},
	}
	return store
}

func TestListMine(t *testing.T) {
	t.Parallel()

	q := NewReservationQueries(seededLedger())

	mine, err := q.ListMine(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// Insertion order preserved, variants mixed.
	require.Equal(t, uint64(1), mine[0].ID)
	require.Equal(t, uint64(4), mine[1].ID)

	none, err := q.ListMine(context.Background(), 42)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListAllPartitionsByKind(t *testing.T) {
	t.Parallel()

	q := NewReservationQueries(seededLedger())

	all, err := q.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, all.SeatReservations, 2)
	require.Len(t, all.HallReservations, 2)
	for _, res := range all.SeatReservations {
		require.True(t, res.IsSeat())
		require.NotNil(t, res.EventID)
	}
	for _, res := range all.HallReservations {
		require.True(t, res.IsHall())
		require.Nil(t, res.EventID)
	}
}

func TestListAllEmptyLedger(t *testing.T) {
	t.Parallel()

	q := NewReservationQueries(newFakeStore(nil, nil))

	all, err := q.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all.SeatReservations)
	require.NotNil(t, all.HallReservations)
	require.Empty(t, all.SeatReservations)
	require.Empty(t, all.HallReservations)
}

func TestListTakenHallDates(t *testing.T) {
	t.Parallel()

	q := NewReservationQueries(seededLedger())

	dates, err := q.ListTakenHallDates(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"2025-12-24", "2025-11-02"}, dates)
}
