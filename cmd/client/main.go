package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/projectdesk/internal/buildinfo"
	"github.com/dmitrijs2005/projectdesk/internal/client/cli"
	"github.com/dmitrijs2005/projectdesk/internal/client/config"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
