package main

import (
	"context"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/rvalverde/wheelhouse/internal/buildinfo"
	"github.com/rvalverde/wheelhouse/internal/cli"
	"github.com/rvalverde/wheelhouse/internal/config"
	"github.com/rvalverde/wheelhouse/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Console output belongs to the REPL; keep log noise above warn.
	logger := logging.NewConsoleLogger(os.Stderr)
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
