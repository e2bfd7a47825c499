package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solara/venue-reservation/internal/model"
)

func TestCanReserveSeats(t *testing.T) {
	t.Parallel()

	ev := &model.Event{ID: 1, GuestsRemaining: 5}

	tests := []struct {
		name      string
		count     int64
		remaining int64
		wantErr   bool
	}{
		{name: "plenty of room", count: 1, remaining: 5},
		{name: "exact sellout allowed", count: 5, remaining: 5},
		{name: "one over capacity", count: 6, remaining: 5, wantErr: true},
		{name: "sold out", count: 1, remaining: 0, wantErr: true},
		{name: "zero seats", count: 0, remaining: 5, wantErr: true},
		{name: "negative seats", count: -3, remaining: 5, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev.GuestsRemaining = tt.remaining
			err := CanReserveSeats(ev, tt.count)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var capErr *InsufficientCapacityError
			require.ErrorAs(t, err, &capErr)
			require.Equal(t, tt.remaining, capErr.Remaining)
		})
	}
}

func TestCanReserveSeatsErrorMessage(t *testing.T) {
	t.Parallel()

	err := CanReserveSeats(&model.Event{GuestsRemaining: 2}, 10)
	require.EqualError(t, err, "insufficient capacity: 2 seats remaining")
	require.False(t, errors.Is(err, ErrDateAlreadyReserved))
}

func TestIsHallDateFree(t *testing.T) {
	t.Parallel()

	taken := []string{"2025-12-24", "2025-12-31"}
	require.True(t, IsHallDateFree("2025-12-25", taken))
	require.False(t, IsHallDateFree("2025-12-24", taken))
	require.True(t, IsHallDateFree("2025-12-24", nil))
}

func TestIsPastOrToday(t *testing.T) {
	t.Parallel()

	const today = "2025-06-15"
	require.True(t, IsPastOrToday("2025-06-14", today))
	require.True(t, IsPastOrToday("2025-06-15", today))
	require.False(t, IsPastOrToday("2025-06-16", today))
	require.False(t, IsPastOrToday("2026-01-01", today))
}
