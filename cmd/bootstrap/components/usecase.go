package components

import (
	"time"

	"cabin-booking/internal/domain/booking"
	"cabin-booking/internal/pkg/clock"
	"cabin-booking/internal/pkg/config"
	"cabin-booking/internal/usecase/commands"
	"cabin-booking/internal/usecase/queries"
	"cabin-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		fx.Annotate(
			booking.NewPerDayPriceCalculator,
			fx.As(new(booking.PriceCalculator)),
		),
		booking.NewFactory,
		newBookingQueries,
		newBookingCommands,
	),
)

func newBookingQueries(
	bookings queries.BookingReadStore,
	cabins queries.CabinReadStore,
	availabilityCache queries.AvailabilityCache,
	clk clock.Clock,
	cfg config.BookingConfig,
) (queries.BookingQueries, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, err
	}
	return queries.NewBookingQueries(bookings, cabins, availabilityCache, clk, loc), nil
}

func newBookingCommands(
	unitOfWork shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	invalidator commands.CacheInvalidator,
	clk clock.Clock,
	cfg config.BookingConfig,
) (commands.BookingCommands, error) {
	defaultTariffID, err := uuid.Parse(cfg.DefaultTariffID)
	if err != nil {
		return nil, err
	}
	return commands.NewBookingCommands(unitOfWork, factory, bookingQueries, invalidator, clk, defaultTariffID), nil
}
