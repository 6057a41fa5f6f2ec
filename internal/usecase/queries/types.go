package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	CabinID         uuid.UUID  `json:"cabin_id"`
	CabinName       string     `json:"cabin_name"`
	TariffID        uuid.UUID  `json:"tariff_id"`
	GuestName       string     `json:"guest_name"`
	GuestPhone      string     `json:"guest_phone"`
	GuestEmail      string     `json:"guest_email,omitempty"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        time.Time  `json:"check_out"`
	Status          string     `json:"status"`
	TotalCostCents  int64      `json:"total_cost_cents"`
	PrepaymentCents int64      `json:"prepayment_cents"`
	TotalPaidCents  int64      `json:"total_paid_cents"`
	// RemainingCents is always recomputed as total cost minus total paid;
	// it is never read from storage.
	RemainingCents int64      `json:"remaining_cents"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	CabinID        uuid.UUID `json:"cabin_id"`
	CabinName      string    `json:"cabin_name"`
	GuestName      string    `json:"guest_name"`
	CheckIn        time.Time `json:"check_in"`
	CheckOut       time.Time `json:"check_out"`
	Status         string    `json:"status"`
	TotalCostCents int64     `json:"total_cost_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

type BookingConflictView struct {
	ID       uuid.UUID `json:"id"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Status   string    `json:"status"`
}

// AvailabilityResult is the advisory answer: available iff no blocking
// booking intersects the candidate period.
type AvailabilityResult struct {
	Available bool                  `json:"available"`
	Conflicts []BookingConflictView `json:"conflicts"`
}

type CabinView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// StayWindow is an occupied interval, used to compute free calendar dates.
type StayWindow struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}
