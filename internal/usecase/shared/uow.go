package shared

import (
	"context"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the transaction coordinator: Within runs fn with exclusive,
// serializable visibility over the affected cabin's booking set and retries
// on serialization failures. Either every effect of fn commits or none do.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Cabins() CabinRepository
	Reads() CommandReads
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// UpdateState persists the mutable lifecycle fields (status, total paid,
	// cancellation timestamp, note) after a transition.
	UpdateState(ctx context.Context, b *booking.Booking) error
	// FindByIDForUpdate row-locks the booking so concurrent transitions
	// serialize on it.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindBlockingOverlaps is the authoritative availability check, meant to
	// run inside the same transaction as the insert it protects.
	FindBlockingOverlaps(ctx context.Context, cabinID uuid.UUID, period booking.StayPeriod) ([]BookingConflict, error)
}

type CabinRepository interface {
	// LockByID takes a row lock on the cabin, serializing all writers for
	// that cabin's booking set, and doubles as the existence check.
	LockByID(ctx context.Context, id uuid.UUID) (*CabinSnapshot, error)
}

type CommandReads interface {
	TariffByID(ctx context.Context, id uuid.UUID) (*TariffSnapshot, error)
}
