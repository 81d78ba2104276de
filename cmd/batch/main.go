package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse-booking/cmd/bootstrap"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

// completes every active reservation whose period has ended, then exits
func main() {
	timeout := flag.Duration("timeout", 0, "バッチ処理のタイムアウト時間 (0 なら BATCH_TIMEOUT)")
	flag.Parse()
	os.Exit(execute(*timeout))
}

func execute(timeout time.Duration) int {
	var (
		completion commands.CompletionCommands
		batchCfg   config.BatchConfig
	)
	app := fx.New(
		bootstrap.BatchModule,
		fx.Populate(&completion, &batchCfg),
	)
	if err := app.Err(); err != nil {
		slog.Error("バッチの初期化に失敗しました", "error", err)
		return 1
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		slog.Error("バッチの起動に失敗しました", "error", err)
		return 1
	}

	limit := timeout
	if limit <= 0 {
		limit = batchCfg.Timeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, completion)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("バッチの停止に失敗しました", "error", err)
	}
	return code
}

func run(ctx context.Context, completion commands.CompletionCommands) int {
	started := time.Now()
	result, err := completion.CompleteDue(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "バッチ処理に失敗しました", "error", err)
		return 1
	}

	slog.InfoContext(ctx, "バッチ処理が完了しました",
		"completed", result.Completed,
		"failed", result.Failed,
		"purged_idempotency_keys", result.PurgedIdempotency,
		"duration", time.Since(started))
	if result.Failed > 0 {
		return 2
	}
	return 0
}
