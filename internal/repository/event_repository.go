package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/solara/venue-reservation/internal/model"
)

// EventRepo provides CRUD operations for the event catalog and the
// capacity mutation used by seat admission.  Catalog writes are
// admin-only at the boundary; this layer only enforces the capacity
// invariant (guests_remaining never goes below zero).
type EventRepo struct{ db *sql.DB }

// NewEventRepo returns an EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventColumns = "id,title,event_date,place,guests_remaining,price,kind,created_at,updated_at"

// Create inserts a new catalog entry and populates the generated ID
// and timestamps on the provided event.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO events (title, event_date, place, guests_remaining, price, kind) VALUES (?,?,?,?,?,?)",
		ev.Title, ev.Date, ev.Place, ev.GuestsRemaining, ev.Price, ev.Kind)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	// Read the row back so timestamps reflect the database defaults.
	got, err := r.FindByID(ctx, ev.ID)
	if err != nil {
		return err
	}
	if got != nil {
		*ev = *got
	}
	return nil
}

// List returns the whole catalog ordered by calendar day ascending.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY event_date ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		if err := scanEvent(rows, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// FindByID fetches a single event.  It returns (nil, nil) when the
// event does not exist.
func (r *EventRepo) FindByID(ctx context.Context, id uint64) (*model.Event, error) {
	return r.get(ctx, "SELECT "+eventColumns+" FROM events WHERE id=?", id)
}

// FindForUpdate fetches an event and locks its row for the duration of
// the enclosing transaction.  It must be called inside WithTx; the row
// lock is what serializes concurrent seat admissions on one event.
// It returns (nil, nil) when the event does not exist.
func (r *EventRepo) FindForUpdate(ctx context.Context, id uint64) (*model.Event, error) {
	return r.get(ctx, "SELECT "+eventColumns+" FROM events WHERE id=? FOR UPDATE", id)
}

func (r *EventRepo) get(ctx context.Context, query string, id uint64) (*model.Event, error) {
	var ev model.Event
	err := scanEvent(conn(ctx, r.db).QueryRowContext(ctx, query, id), &ev)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// TakeSeats decrements guests_remaining by count, guarded so the value
// can never go negative.  It reports false when the event lacks the
// requested capacity (or vanished), leaving the row untouched.
func (r *EventRepo) TakeSeats(ctx context.Context, id uint64, count int64) (bool, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE events SET guests_remaining = guests_remaining - ? WHERE id = ? AND guests_remaining >= ?",
		count, id, count)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EventPatch carries the optional fields of a partial catalog update.
// Nil fields are left unchanged.
type EventPatch struct {
	Title           *string `json:"title"`
	Date            *string `json:"date"`
	Place           *string `json:"place"`
	GuestsRemaining *int64  `json:"guestsRemaining"`
	Price           *int64  `json:"price"`
	Kind            *string `json:"kind"`
}

// Update applies a partial update and returns the updated event.  It
// returns ErrEventNotFound when the event does not exist and is a
// no-op when the patch carries no fields.
func (r *EventRepo) Update(ctx context.Context, id uint64, patch EventPatch) (*model.Event, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Date != nil {
		add("event_date", *patch.Date)
	}
	if patch.Place != nil {
		add("place", *patch.Place)
	}
	if patch.GuestsRemaining != nil {
		add("guests_remaining", *patch.GuestsRemaining)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Kind != nil {
		add("kind", *patch.Kind)
	}
	if len(sets) > 0 {
		args = append(args, id)
		_, err := conn(ctx, r.db).ExecContext(ctx,
			"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, err
		}
	}
	ev, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// Delete removes an event from the catalog.  It returns
// ErrEventNotFound when no row was deleted.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// scanTarget lets scanEvent accept both *sql.Row and *sql.Rows.
type scanTarget interface{ Scan(dest ...any) error }

func scanEvent(row scanTarget, ev *model.Event) error {
	return row.Scan(&ev.ID, &ev.Title, &ev.Date, &ev.Place,
		&ev.GuestsRemaining, &ev.Price, &ev.Kind, &ev.CreatedAt, &ev.UpdatedAt)
}
