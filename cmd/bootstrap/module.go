package bootstrap

import (
	"warehouse-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// base is shared by every binary: config, logging, database and use cases.
var base = fx.Options(
	ConfigModule,
	LoggerModule,
	FxLogger,
	DBModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

// Module wires the HTTP API.
var Module = fx.Options(
	base,
	MigrateModule,
	JWTModule,
	components.HandlerModule,
)

// RelayModule wires the outbox relay.
var RelayModule = fx.Options(
	base,
	components.EventsModule,
)

// BatchModule wires the completion batch.
var BatchModule = fx.Options(
	base,
)
