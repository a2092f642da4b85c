package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/auxcardio/mlcds/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "mlcds",
	Short: "ML-CDS aortic stenosis risk scoring service",
	Long: "Scores patients with moderate-to-severe aortic stenosis using the " +
		"pre-trained ML-CDS cardiac damage model, explains each score with " +
		"per-feature SHAP attributions, and classifies it into quartile risk tiers.",
}

func init() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ModelPath, "model", os.Getenv("MLCDS_MODEL"), "Path to the serialized XGBoost model JSON (or set MLCDS_MODEL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
