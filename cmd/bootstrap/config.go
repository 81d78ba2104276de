package bootstrap

import (
	"warehouse-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSections,
)

// ConfigSections exposes the config sections that constructors take directly.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.EventsConfig { return cfg.Events },
	func(cfg config.Config) config.BatchConfig { return cfg.Batch },
)
