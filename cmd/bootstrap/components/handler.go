package components

import (
	"warehouse-booking/internal/handler"
	"warehouse-booking/internal/handler/api"
	reqdto "warehouse-booking/internal/handler/dto/request"
	"warehouse-booking/internal/handler/middleware"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			api.NewHealthHandler,
			fx.From(new(*pgxpool.Pool)),
		),
		api.NewUnitHandler,
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(reqdto.RegisterValidators),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	health *api.HealthHandler,
	units *api.UnitHandler,
	reservation *api.ReservationHandler,
	payment *api.PaymentHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Health:      health,
		Units:       units,
		Reservation: reservation,
		Payment:     payment,
		Admin:       admin,
	}
}
