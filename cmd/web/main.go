package main

import (
	"os"

	"github.com/silverstar-dev/silverstar/internal/config"
	"github.com/silverstar-dev/silverstar/internal/logger"
	"github.com/silverstar-dev/silverstar/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	zlog := logger.GetLogger()

	server, err := web.New(cfg, zlog)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := server.Start(); err != nil {
		zlog.Fatal().Err(err).Msg("Server error")
	}
}
