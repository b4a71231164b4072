package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/hirehub/internal/client/cli"
	"github.com/dmitrijs2005/hirehub/internal/client/config"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewText(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
