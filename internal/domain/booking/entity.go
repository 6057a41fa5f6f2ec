package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayPeriod  = errors.New("invalid stay period")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNegativeCost       = errors.New("cost cannot be negative")
	ErrGuestNameRequired  = errors.New("guest name is required")
	ErrGuestPhoneRequired = errors.New("guest phone is required")
)

// Booking is the aggregate guarding the overlap invariant: for one cabin,
// no two bookings in a blocking status may have intersecting stay periods.
// The invariant itself is enforced at commit time by the transaction
// coordinator; the entity provides the predicates and the lifecycle rules.
type Booking struct {
	id          uuid.UUID
	cabinID     uuid.UUID
	tariffID    uuid.UUID
	period      StayPeriod
	status      Status
	guest       Guest
	totalCost   Money
	prepayment  Money
	totalPaid   Money
	note        Note
	createdAt   time.Time
	cancelledAt *time.Time
}

func NewBooking(
	cabinID, tariffID uuid.UUID,
	period StayPeriod,
	guest Guest,
	totalCost, prepayment Money,
	note Note,
	createdAt time.Time,
) (*Booking, error) {
	if totalCost.IsNegative() {
		return nil, ErrNegativeCost
	}
	if prepayment.IsNegative() {
		return nil, ErrNegativeCost
	}

	return &Booking{
		id:         uuid.New(),
		cabinID:    cabinID,
		tariffID:   tariffID,
		period:     period,
		status:     StatusBooked,
		guest:      guest,
		totalCost:  totalCost,
		prepayment: prepayment,
		// The prepayment is recorded as paid until it is settled at check-in.
		totalPaid: prepayment,
		note:      note,
		createdAt: createdAt,
	}, nil
}

func Reconstruct(
	id, cabinID, tariffID uuid.UUID,
	period StayPeriod,
	status Status,
	guest Guest,
	totalCost, prepayment, totalPaid Money,
	note Note,
	createdAt time.Time,
	cancelledAt *time.Time,
) *Booking {
	return &Booking{
		id:          id,
		cabinID:     cabinID,
		tariffID:    tariffID,
		period:      period,
		status:      status,
		guest:       guest,
		totalCost:   totalCost,
		prepayment:  prepayment,
		totalPaid:   totalPaid,
		note:        note,
		createdAt:   createdAt,
		cancelledAt: cancelledAt,
	}
}

// TransitionTo applies the lifecycle edge and its payment side effects.
// A disallowed edge (including re-applying the current status) leaves the
// booking untouched and returns ErrInvalidTransition.
func (b *Booking) TransitionTo(target Status, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	b.status = target
	switch target {
	case StatusCheckedIn:
		// The recorded prepayment is consumed on arrival; payments restart
		// from zero against the total cost.
		b.totalPaid = NewMoney(0)
	case StatusCancelled:
		t := now
		b.cancelledAt = &t
	}
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	return b.TransitionTo(StatusCancelled, now)
}

// Blocks reports whether this booking occupies its cabin over the candidate
// period, i.e. it is in a blocking status and the half-open intervals meet.
func (b *Booking) Blocks(candidate StayPeriod) bool {
	return b.status.Blocking() && b.period.Overlaps(candidate)
}

// RemainingAmount is derived, never persisted: totalCost minus totalPaid.
func (b *Booking) RemainingAmount() Money {
	return b.totalCost.Sub(b.totalPaid)
}

func (b *Booking) SetNote(note Note) {
	b.note = note
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) CabinID() uuid.UUID      { return b.cabinID }
func (b *Booking) TariffID() uuid.UUID     { return b.tariffID }
func (b *Booking) Period() StayPeriod      { return b.period }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) Guest() Guest            { return b.guest }
func (b *Booking) TotalCost() Money        { return b.totalCost }
func (b *Booking) Prepayment() Money       { return b.prepayment }
func (b *Booking) TotalPaid() Money        { return b.totalPaid }
func (b *Booking) Note() Note              { return b.note }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }
