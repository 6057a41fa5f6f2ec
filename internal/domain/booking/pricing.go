package booking

import (
	"cabin-booking/internal/domain/tariff"
)

type PriceCalculator interface {
	CalculateCostCents(t *tariff.Tariff, period StayPeriod) int64
}

// PerDayPriceCalculator bills whole days: the stay duration rounded up,
// never fewer than one day.
type PerDayPriceCalculator struct{}

func NewPerDayPriceCalculator() *PerDayPriceCalculator {
	return &PerDayPriceCalculator{}
}

func (pc *PerDayPriceCalculator) CalculateCostCents(t *tariff.Tariff, period StayPeriod) int64 {
	return t.PricePerDayCents() * int64(period.Nights())
}
