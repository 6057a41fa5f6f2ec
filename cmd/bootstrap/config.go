package bootstrap

import (
	"cabin-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CacheConfig { return cfg.Cache },
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	),
)
