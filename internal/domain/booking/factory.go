package booking

import (
	"cabin-booking/internal/domain/cabin"
	"cabin-booking/internal/domain/tariff"
	"cabin-booking/internal/pkg/clock"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateBooking prices the stay against the tariff and assembles a new
// aggregate in the initial Booked state. Availability is not checked here;
// that belongs to the transaction coordinator.
func (f *Factory) CreateBooking(
	cabinEntity *cabin.Cabin,
	tariffEntity *tariff.Tariff,
	period StayPeriod,
	guest Guest,
	prepayment Money,
	note Note,
) (*Booking, error) {
	costCents := f.PriceCalculator.CalculateCostCents(tariffEntity, period)
	if costCents < 0 {
		return nil, ErrNegativeCost
	}

	return NewBooking(
		cabinEntity.ID(),
		tariffEntity.ID(),
		period,
		guest,
		NewMoney(costCents),
		prepayment,
		note,
		f.Clock.Now(),
	)
}
