package components

import (
	"warehouse-booking/internal/infra/readstore"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/infra/uow"
	"warehouse-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

// Query-side stores read from the pool directly; command-side reads go
// through the unit of work.
var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Unit
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.UnitReadQueries)),
		),
		fx.Annotate(
			readstore.NewUnitReadStore,
			fx.As(new(queries.UnitReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationReadQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Payment
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.PaymentReadQueries)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlstore.Queries {
	return sqlstore.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlstore.DBTX {
	return pool
}
