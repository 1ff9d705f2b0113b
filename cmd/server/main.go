package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/bookmarks/internal/buildinfo"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server"
	"github.com/dmitrijs2005/bookmarks/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := server.NewApp(cfg, logger).Run(context.Background()); err != nil {
		logger.Error(context.Background(), err.Error())
		os.Exit(1)
	}
}
