package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/admin/astrografia/internal/app"
)

const appName = "astrografia"

func main() {
	cfg, err := app.NewEnvConfig(appName)
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := app.New(appName, cfg)

	if err := app.Run(ctx); err != nil {
		panic(err)
	}
}
