package repository

import (
	"context"
	"database/sql"
)

// BackfillReservationKinds upgrades legacy ledger rows that predate
// the explicit variant tag.  The classification mirrors how those rows
// were written: an event reference means a seat purchase, its absence
// means a hall booking.  The statements only touch untagged rows, so
// running the backfill repeatedly is harmless.  It returns the number
// of rows reclassified.
func BackfillReservationKinds(ctx context.Context, db *sql.DB) (int64, error) {
	var total int64

	seat, err := db.ExecContext(ctx,
		`UPDATE reservations SET kind = 'seat'
		 WHERE (kind IS NULL OR kind = '') AND event_id IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	if n, err := seat.RowsAffected(); err == nil {
		total += n
	}

	hall, err := db.ExecContext(ctx,
		`UPDATE reservations SET kind = 'hall'
		 WHERE (kind IS NULL OR kind = '') AND event_id IS NULL`)
	if err != nil {
		return total, err
	}
	if n, err := hall.RowsAffected(); err == nil {
		total += n
	}

	return total, nil
}
