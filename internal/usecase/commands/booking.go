package commands

import (
	"context"
	"fmt"
	"log/slog"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/domain/cabin"
	"cabin-booking/internal/domain/tariff"
	"cabin-booking/internal/infra"
	"cabin-booking/internal/pkg/clock"
	"cabin-booking/internal/pkg/errs"
	"cabin-booking/internal/usecase/queries"
	"cabin-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConflictError rejects a create whose period intersects the active booking
// set; it carries the colliding bookings for diagnostic reporting.
// errors.Is(err, errs.ErrBookingConflict) matches it.
type ConflictError struct {
	Conflicts []shared.BookingConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cabin already booked for the requested period (%d conflicts)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return errs.ErrBookingConflict
}

// CacheInvalidator is the cache layer port: mutations report the touched
// cabin after their transaction commits.
type CacheInvalidator interface {
	InvalidateCabin(cabinID uuid.UUID)
}

// CreateBookingParams is the validated input: value objects are constructed
// (and rejected) at the DTO boundary, never coerced here.
type CreateBookingParams struct {
	CabinID    uuid.UUID
	Period     booking.StayPeriod
	Guest      booking.Guest
	TariffID   *uuid.UUID
	Prepayment booking.Money
	Note       booking.Note
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target booking.Status, note *string) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow             shared.UnitOfWork
	factory         *booking.Factory
	bookingQueries  queries.BookingQueries
	cache           CacheInvalidator
	clock           clock.Clock
	defaultTariffID uuid.UUID
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	cache CacheInvalidator,
	clk clock.Clock,
	defaultTariffID uuid.UUID,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:             uow,
		factory:         factory,
		bookingQueries:  bookingQueries,
		cache:           cache,
		clock:           clk,
		defaultTariffID: defaultTariffID,
	}
}

// CreateBooking is the atomic check-and-create: lock the cabin row, re-run
// the availability check under that lock, price the stay, insert. The cache
// is invalidated only after the transaction commits, so a rollback leaves
// both store and cache exactly as before the call.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	var createdID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cabinSnap, err := tx.Cabins().LockByID(ctx, params.CabinID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrCabinNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		tariffSnap, err := c.resolveTariff(ctx, tx, params.TariffID)
		if err != nil {
			return err
		}

		conflicts, err := tx.Bookings().FindBlockingOverlaps(ctx, params.CabinID, params.Period)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		cabinEntity, err := cabin.NewCabin(cabinSnap.ID, cabinSnap.Name)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		tariffEntity, err := tariff.NewTariff(tariffSnap.ID, tariffSnap.Name, tariffSnap.PricePerDayCents)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		bookingEntity, err := c.factory.CreateBooking(
			cabinEntity, tariffEntity,
			params.Period, params.Guest, params.Prepayment, params.Note,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		createdID, err = tx.Bookings().Create(ctx, bookingEntity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				// The exclusion constraint caught what the re-check missed.
				return &ConflictError{}
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.InvalidateCabin(params.CabinID)

	view, err := c.bookingQueries.GetByID(ctx, createdID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// TransitionStatus applies one lifecycle edge under a row lock. An optional
// note may accompany the check-out transition.
func (c *bookingCommandsImpl) TransitionStatus(ctx context.Context, id uuid.UUID, target booking.Status, note *string) (*queries.BookingView, error) {
	var cabinID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookingEntity, err := tx.Bookings().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := bookingEntity.TransitionTo(target, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if note != nil && target == booking.StatusCheckedOut {
			bookingEntity.SetNote(booking.NewNote(*note))
		}

		if err := tx.Bookings().UpdateState(ctx, bookingEntity); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		cabinID = bookingEntity.CabinID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.InvalidateCabin(cabinID)

	view, err := c.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// CancelBooking soft-cancels: the row is kept with its interval for audit,
// and the slot frees up because availability excludes cancelled bookings.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) error {
	_, err := c.TransitionStatus(ctx, id, booking.StatusCancelled, nil)
	return err
}

// resolveTariff looks up the requested tariff, falling back to the default
// tier when none was given or the reference is dangling. The fallback is a
// recoverable condition, logged rather than surfaced.
func (c *bookingCommandsImpl) resolveTariff(ctx context.Context, tx shared.Tx, tariffID *uuid.UUID) (*shared.TariffSnapshot, error) {
	requested := c.defaultTariffID
	if tariffID != nil {
		requested = *tariffID
	}

	snap, err := tx.Reads().TariffByID(ctx, requested)
	if err == nil {
		return snap, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if requested == c.defaultTariffID {
		return nil, errs.Mark(err, errs.ErrTariffNotFound)
	}

	slog.Warn("tariff not found, falling back to default tariff",
		"tariff_id", requested.String(),
		"default_tariff_id", c.defaultTariffID.String())

	snap, err = tx.Reads().TariffByID(ctx, c.defaultTariffID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTariffNotFound)
	}
	return snap, nil
}
