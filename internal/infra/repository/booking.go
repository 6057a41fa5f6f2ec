package repository

import (
	"context"
	"errors"
	"time"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/infra"
	"cabin-booking/internal/infra/db"
	"cabin-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeExclusionViolation  = "23P01"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, cabin_id, tariff_id,
	guest_name, guest_phone, guest_email,
	check_in, check_out, status,
	total_cost_cents, prepayment_cents, total_paid_cents,
	notes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	_, err := r.db.Exec(ctx, createBookingSQL,
		b.ID(), b.CabinID(), b.TariffID(),
		b.Guest().Name(), b.Guest().Phone(), b.Guest().Email(),
		b.Period().CheckIn(), b.Period().CheckOut(), b.Status().String(),
		b.TotalCost().Cents(), b.Prepayment().Cents(), b.TotalPaid().Cents(),
		b.Note().String(), b.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create booking", err)
	}

	return b.ID(), nil
}

const updateBookingStateSQL = `
UPDATE bookings
SET status = $2, total_paid_cents = $3, cancelled_at = $4, notes = $5
WHERE id = $1
`

func (r *BookingRepository) UpdateState(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingStateSQL,
		b.ID(), b.Status().String(), b.TotalPaid().Cents(), b.CancelledAt(), b.Note().String(),
	)
	if err != nil {
		return classifyWriteErr("failed to update booking state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

const findBookingForUpdateSQL = `
SELECT id, cabin_id, tariff_id,
	guest_name, guest_phone, guest_email,
	check_in, check_out, status,
	total_cost_cents, prepayment_cents, total_paid_cents,
	notes, created_at, cancelled_at
FROM bookings
WHERE id = $1
FOR UPDATE
`

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, findBookingForUpdateSQL, id)

	var (
		bookingID, cabinID, tariffID                     uuid.UUID
		guestName, guestPhone, guestEmail, status, notes string
		checkIn, checkOut, createdAt                     time.Time
		totalCost, prepayment, totalPaid                 int64
		cancelledAt                                      *time.Time
	)
	err := row.Scan(
		&bookingID, &cabinID, &tariffID,
		&guestName, &guestPhone, &guestEmail,
		&checkIn, &checkOut, &status,
		&totalCost, &prepayment, &totalPaid,
		&notes, &createdAt, &cancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	return reconstructBooking(
		bookingID, cabinID, tariffID,
		guestName, guestPhone, guestEmail,
		checkIn, checkOut, status,
		totalCost, prepayment, totalPaid,
		notes, createdAt, cancelledAt,
	)
}

const findBlockingOverlapsSQL = `
SELECT id, check_in, check_out, status
FROM bookings
WHERE cabin_id = $1
  AND status = ANY($2)
  AND check_in < $3
  AND check_out > $4
ORDER BY check_in
`

// FindBlockingOverlaps runs the half-open intersection query against the
// blocking statuses. Called inside the create transaction it is the
// authoritative check; the same SQL backs the advisory read store path.
func (r *BookingRepository) FindBlockingOverlaps(ctx context.Context, cabinID uuid.UUID, period booking.StayPeriod) ([]shared.BookingConflict, error) {
	rows, err := r.db.Query(ctx, findBlockingOverlapsSQL,
		cabinID, blockingStatusStrings(), period.CheckOut(), period.CheckIn(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	var conflicts []shared.BookingConflict
	for rows.Next() {
		var c shared.BookingConflict
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

func blockingStatusStrings() []string {
	statuses := booking.BlockingStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func reconstructBooking(
	id, cabinID, tariffID uuid.UUID,
	guestName, guestPhone, guestEmail string,
	checkIn, checkOut time.Time,
	status string,
	totalCost, prepayment, totalPaid int64,
	notes string,
	createdAt time.Time,
	cancelledAt *time.Time,
) (*booking.Booking, error) {
	period, err := booking.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid period", err)
	}
	st, err := booking.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid status", err)
	}
	guest, err := booking.NewGuest(guestName, guestPhone, guestEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid guest", err)
	}

	return booking.Reconstruct(
		id, cabinID, tariffID,
		period, st, guest,
		booking.NewMoney(totalCost), booking.NewMoney(prepayment), booking.NewMoney(totalPaid),
		booking.NewNote(notes),
		createdAt, cancelledAt,
	), nil
}

// classifyWriteErr maps Postgres constraint violations onto repository error
// kinds. An exclusion violation on the overlap constraint means a conflicting
// booking slipped past the in-transaction re-check (e.g. a lost lock race) and
// is reported as a conflict, not a failure.
func classifyWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation, pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
