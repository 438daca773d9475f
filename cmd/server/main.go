package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/server"
)

func main() {

	ctx := context.Background()

	config.LoadDotEnv()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewJSON(os.Stdout, level)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
