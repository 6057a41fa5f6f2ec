package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep command code off the read-side view types.
type CabinSnapshot struct {
	ID   uuid.UUID
	Name string
}

type TariffSnapshot struct {
	ID               uuid.UUID
	Name             string
	PricePerDayCents int64
}

// BookingConflict identifies a colliding booking for diagnostic reporting.
type BookingConflict struct {
	ID       uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
	Status   string
}
