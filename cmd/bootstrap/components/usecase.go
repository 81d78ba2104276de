package components

import (
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/usecase"
	"warehouse-booking/internal/usecase/commands"
	"warehouse-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewPaymentUseCase,
		commands.NewCompletionUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewUnitQueries,
		queries.NewAvailabilityQueries,
		queries.NewPaymentQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
