package readstore

import (
	"context"
	"errors"
	"time"

	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/db"
	"cabin-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDSQL = `
SELECT b.id, b.cabin_id, c.name, b.tariff_id,
	b.guest_name, b.guest_phone, b.guest_email,
	b.check_in, b.check_out, b.status,
	b.total_cost_cents, b.prepayment_cents, b.total_paid_cents,
	b.notes, b.created_at, b.cancelled_at
FROM bookings b
JOIN cabins c ON b.cabin_id = c.id
WHERE b.id = $1
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, findBookingByIDSQL, id)

	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.CabinID, &v.CabinName, &v.TariffID,
		&v.GuestName, &v.GuestPhone, &v.GuestEmail,
		&v.CheckIn, &v.CheckOut, &v.Status,
		&v.TotalCostCents, &v.PrepaymentCents, &v.TotalPaidCents,
		&v.Notes, &v.CreatedAt, &v.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	v.RemainingCents = v.TotalCostCents - v.TotalPaidCents
	return &v, nil
}

const listBookingsSQL = `
SELECT b.id, b.cabin_id, c.name, b.guest_name,
	b.check_in, b.check_out, b.status, b.total_cost_cents, b.created_at
FROM bookings b
JOIN cabins c ON b.cabin_id = c.id
ORDER BY b.check_in DESC
`

func (r *BookingReadStore) ListAll(ctx context.Context) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return scanBookingListItems(rows)
}

const listBookingsByCabinSQL = `
SELECT b.id, b.cabin_id, c.name, b.guest_name,
	b.check_in, b.check_out, b.status, b.total_cost_cents, b.created_at
FROM bookings b
JOIN cabins c ON b.cabin_id = c.id
WHERE b.cabin_id = $1
  AND b.status <> 'cancelled'
ORDER BY b.check_in DESC
`

func (r *BookingReadStore) ListByCabin(ctx context.Context, cabinID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByCabinSQL, cabinID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by cabin", err)
	}
	return scanBookingListItems(rows)
}

const findBlockingOverlapsViewSQL = `
SELECT id, check_in, check_out, status
FROM bookings
WHERE cabin_id = $1
  AND status IN ('booked', 'checked_in')
  AND check_in < $2
  AND check_out > $3
ORDER BY check_in
`

// FindBlockingOverlaps is the advisory variant of the availability check:
// same predicate as the transactional one, no locks taken.
func (r *BookingReadStore) FindBlockingOverlaps(ctx context.Context, cabinID uuid.UUID, checkIn, checkOut time.Time) ([]queries.BookingConflictView, error) {
	rows, err := r.db.Query(ctx, findBlockingOverlapsViewSQL, cabinID, checkOut, checkIn)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	var conflicts []queries.BookingConflictView
	for rows.Next() {
		var c queries.BookingConflictView
		if err := rows.Scan(&c.ID, &c.CheckIn, &c.CheckOut, &c.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping booking", err)
		}
		conflicts = append(conflicts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping bookings", err)
	}

	return conflicts, nil
}

const listBlockingWindowsSQL = `
SELECT check_in, check_out
FROM bookings
WHERE cabin_id = $1
  AND status IN ('booked', 'checked_in')
  AND check_out > $2
  AND check_in < $3
ORDER BY check_in
`

func (r *BookingReadStore) ListBlockingWindows(ctx context.Context, cabinID uuid.UUID, from, until time.Time) ([]queries.StayWindow, error) {
	rows, err := r.db.Query(ctx, listBlockingWindowsSQL, cabinID, from, until)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupied windows", err)
	}
	defer rows.Close()

	var windows []queries.StayWindow
	for rows.Next() {
		var w queries.StayWindow
		if err := rows.Scan(&w.CheckIn, &w.CheckOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied window", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied windows", err)
	}

	return windows, nil
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID, &item.CabinID, &item.CabinName, &item.GuestName,
			&item.CheckIn, &item.CheckOut, &item.Status, &item.TotalCostCents, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}

	return items, nil
}
