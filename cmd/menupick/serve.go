package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/vbonduro/menupick/internal/logging"
	"github.com/vbonduro/menupick/internal/web"
	"github.com/vbonduro/menupick/internal/web/templates"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, cleanupLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanupLog()

	svc, cleanup, err := newService(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize service", "error", err)
		return err
	}
	defer cleanup()

	server := web.NewServer(svc, templates.FS, logger)
	if err := server.ListenAndServe(cfg.ListenAddr, cfg.RequestTimeout); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}
