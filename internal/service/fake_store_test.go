package service

import (
	"context"
	"sync"

	"github.com/solara/venue-reservation/internal/model"
	"github.com/solara/venue-reservation/internal/repository"
)

// fakeStore is an in-memory stand-in for the MySQL repositories.  Its
// WithTx holds one mutex for the whole read-check-write sequence,
// which is the serialization contract the real store provides through
// row locks, and restores a snapshot when the callback fails so a
// failed admission observably changes nothing.
type fakeStore struct {
	mu     sync.Mutex
	users  map[uint64]model.User
	events map[uint64]model.Event
	ledger []model.Reservation
	nextID uint64
}

func newFakeStore(users []model.User, events []model.Event) *fakeStore {
	f := &fakeStore{
		users:  make(map[uint64]model.User),
		events: make(map[uint64]model.Event),
		nextID: 1,
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	for _, ev := range events {
		f.events[ev.ID] = ev
	}
	return f
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	eventsSnap := make(map[uint64]model.Event, len(f.events))
	for id, ev := range f.events {
		eventsSnap[id] = ev
	}
	ledgerSnap := append([]model.Reservation(nil), f.ledger...)
	idSnap := f.nextID

	if err := fn(ctx); err != nil {
		f.events = eventsSnap
		f.ledger = ledgerSnap
		f.nextID = idSnap
		return err
	}
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeStore) FindForUpdate(ctx context.Context, id uint64) (*model.Event, error) {
	if ev, ok := f.events[id]; ok {
		return &ev, nil
	}
	return nil, nil
}

func (f *fakeStore) TakeSeats(ctx context.Context, id uint64, count int64) (bool, error) {
	ev, ok := f.events[id]
	if !ok || ev.GuestsRemaining < count {
		return false, nil
	}
	ev.GuestsRemaining -= count
	f.events[id] = ev
	return true, nil
}

func (f *fakeStore) Create(ctx context.Context, res *model.Reservation) error {
	if res.Kind == model.ReservationKindHall {
		for _, existing := range f.ledger {
			if existing.IsHall() && existing.Date == res.Date {
				return repository.ErrHallDateTaken
			}
		}
	}
	res.ID = f.nextID
	f.nextID++
	f.ledger = append(f.ledger, *res)
	return nil
}

func (f *fakeStore) HallDateTaken(ctx context.Context, date string) (bool, error) {
	for _, res := range f.ledger {
		if res.IsHall() && res.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for _, res := range f.ledger {
		if res.OwnerID == ownerID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return append([]model.Reservation(nil), f.ledger...), nil
}

func (f *fakeStore) ListHallDates(ctx context.Context) ([]string, error) {
	dates := make([]string, 0)
	for _, res := range f.ledger {
		if res.IsHall() {
			dates = append(dates, res.Date)
		}
	}
	return dates, nil
}
