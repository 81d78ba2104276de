package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"warehouse-booking/cmd/bootstrap"
	"warehouse-booking/internal/infra/events"

	"go.uber.org/fx"
)

func startRelay(lc fx.Lifecycle, relay *events.Relay, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("outbox relay を起動します")
			go func() {
				defer close(done)
				if err := relay.Run(ctx); err != nil {
					logger.Error("outbox relay が異常終了しました", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			logger.Info("outbox relay を停止しました")
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.RelayModule,
		fx.Invoke(startRelay),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("relay の起動に失敗しました", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("relay の停止に失敗しました", "error", err)
		os.Exit(1)
	}
}
