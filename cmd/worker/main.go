package main

import (
	"context"
	"os/signal"
	"syscall"

	workergold "github.com/retailstream/posgold/app/worker"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer cancel()

	app := workergold.Initialize(ctx)

	app.Start(ctx)
}
