package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/auxcardio/mlcds/internal/exitcode"
	"github.com/auxcardio/mlcds/internal/logging"
	"github.com/auxcardio/mlcds/internal/scoring"
	"github.com/auxcardio/mlcds/internal/server"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring API over HTTP",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Listen, "listen", ":8080", "Listen address")
	f.StringVar(&cfg.ThresholdsMode, "thresholds-mode", "", "Threshold source: fixed or reference")
	f.StringVar(&cfg.ReferencePath, "reference", os.Getenv("MLCDS_REFERENCE"), "Reference cohort parquet file (reference mode)")
	f.StringSliceVar(&cfg.AllowedOrigins, "allow-origin", nil, "Allowed CORS origins (default: all)")
	f.StringVar(&configFile, "config", "", "Optional YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "serve")

	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil {
			log.Error().Err(err).Msg("config file load failed")
			os.Exit(exitcode.UsageError)
		}
	}
	if err := cfg.ValidateServe(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	// A failed artifact load is surfaced once and the scoring path stays
	// disabled for the process lifetime; the server still answers health
	// checks so the failure is visible to operators.
	svc, loadErr := scoring.NewService(&cfg, log)
	if loadErr != nil {
		log.Error().Err(loadErr).Msg("artifact load failed, serving degraded")
	}

	srv := server.New(svc, loadErr, log)
	if err := srv.Run(cfg.Listen, cfg.AllowedOrigins); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(exitcode.ServeError)
	}
	return nil
}
