package components

import (
	"context"

	"warehouse-booking/internal/infra/events"
	"warehouse-booking/internal/infra/repository"
	"warehouse-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.OutboxWriteQueries)),
		),
		fx.Annotate(
			repository.NewOutboxRepository,
			fx.As(new(events.OutboxStore)),
		),
		fx.Annotate(
			NewPublisher,
			fx.As(new(events.Publisher)),
		),
		fx.Annotate(
			events.NewRelay,
			fx.From(new(*pgxpool.Pool)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.EventsConfig) (*events.KafkaPublisher, error) {
	p, err := events.NewKafkaPublisher(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}
