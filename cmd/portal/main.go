package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/netandconnect/portal/internal/app"
	"github.com/netandconnect/portal/pkg/config"
	"github.com/netandconnect/portal/pkg/logger"
)

func main() {
	ctx := context.Background()

	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	application, err := app.New(ctx, cfg, nil)
	if err != nil {
		slog.Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		slog.Error("application error", logger.Error(err))
		application.Close()
		os.Exit(1)
	}
}
