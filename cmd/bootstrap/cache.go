package bootstrap

import (
	"cabin-booking/internal/infra/cache"
	"cabin-booking/internal/usecase/commands"
	"cabin-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		fx.Annotate(
			cache.New,
			fx.As(new(queries.AvailabilityCache)),
			fx.As(new(commands.CacheInvalidator)),
		),
	),
)
