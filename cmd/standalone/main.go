package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/retailstream/posgold/app/standalone"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := standalone.Initialize(ctx)
	if err != nil {
		panic(err)
	}

	// Immediate pass before cron
	if refreshErr := app.RefreshOnce(ctx); refreshErr != nil {
		app.Logger.Warn("Initial refresh failed, cron will retry", zap.Error(refreshErr))
	}

	// Start cron scheduler
	app.StartCron()

	// Setup server
	app.SetupServer()

	// Start server
	app.Start(ctx)
}
