package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/solara/venue-reservation/internal/model"
)

// ReservationRepo provides access to the append-only reservation
// ledger.  Rows are inserted exclusively by the admission service and
// never updated afterwards; listings preserve insertion order.
type ReservationRepo struct{ db *sql.DB }

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = "id,kind,owner_id,owner_email,event_id,seat_count,total_price,event_kind,hall_date,guest_count,note,created_at"

// Create appends a ledger entry and populates the generated ID.  The
// caller supplies CreatedAt so the stored timestamp matches the one on
// the returned reservation.  A hall insert that loses the race on the
// hall_date unique key yields ErrHallDateTaken.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	var (
		eventID   any
		seatCount any
		total     any
		eventKind any
		hallDate  any
		guests    any
		note      any
	)
	switch res.Kind {
	case model.ReservationKindSeat:
		eventID = *res.EventID
		seatCount = res.SeatCount
		total = res.TotalPrice
	case model.ReservationKindHall:
		eventKind = res.EventKind
		hallDate = res.Date
		guests = res.GuestCount
		note = res.Note
	}
	out, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO reservations
		 (kind, owner_id, owner_email, event_id, seat_count, total_price, event_kind, hall_date, guest_count, note, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		res.Kind, res.OwnerID, res.OwnerEmail,
		eventID, seatCount, total, eventKind, hallDate, guests, note,
		res.CreatedAt.UTC())
	if err != nil {
		if isDuplicateKey(err) {
			return ErrHallDateTaken
		}
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// HallDateTaken reports whether a hall reservation already exists for
// the given calendar day.  Inside a transaction the matching row (if
// any) is locked, so a concurrent admission for the same day blocks
// until this transaction resolves.
func (r *ReservationRepo) HallDateTaken(ctx context.Context, date string) (bool, error) {
	var id uint64
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT id FROM reservations WHERE kind = ? AND hall_date = ? LIMIT 1 FOR UPDATE",
		model.ReservationKindHall, date).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByOwner returns all reservations created by one user, oldest
// first (insertion order).
func (r *ReservationRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE owner_id = ? ORDER BY id ASC", ownerID)
}

// ListAll returns the full ledger in insertion order.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, "SELECT "+reservationColumns+" FROM reservations ORDER BY id ASC")
}

// ListHallDates returns every calendar day currently claimed by a hall
// reservation, ascending.
func (r *ReservationRepo) ListHallDates(ctx context.Context) ([]string, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT hall_date FROM reservations WHERE kind = ? AND hall_date IS NOT NULL ORDER BY hall_date ASC",
		model.ReservationKindHall)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func scanReservation(rows *sql.Rows) (*model.Reservation, error) {
	var (
		res       model.Reservation
		eventID   sql.NullInt64
		seatCount sql.NullInt64
		total     sql.NullInt64
		eventKind sql.NullString
		hallDate  sql.NullString
		guests    sql.NullInt64
		note      sql.NullString
	)
	if err := rows.Scan(&res.ID, &res.Kind, &res.OwnerID, &res.OwnerEmail,
		&eventID, &seatCount, &total, &eventKind, &hallDate, &guests, &note,
		&res.CreatedAt); err != nil {
		return nil, err
	}
	if eventID.Valid {
		id := uint64(eventID.Int64)
		res.EventID = &id
	}
	res.SeatCount = seatCount.Int64
	res.TotalPrice = total.Int64
	res.EventKind = eventKind.String
	res.Date = hallDate.String
	res.GuestCount = guests.Int64
	res.Note = note.String
	return &res, nil
}
