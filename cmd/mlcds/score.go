package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auxcardio/mlcds/internal/exitcode"
	"github.com/auxcardio/mlcds/internal/feature"
	"github.com/auxcardio/mlcds/internal/logging"
	"github.com/auxcardio/mlcds/internal/model"
	"github.com/auxcardio/mlcds/internal/scoring"
)

var (
	recordFile string
	scoreJSON  bool
	topN       int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one patient record from a JSON file",
	RunE:  runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&recordFile, "record", "", "Path to a patient record JSON file (required)")
	f.BoolVar(&scoreJSON, "json", false, "Print the full assessment as JSON")
	f.IntVar(&topN, "top", 8, "Number of contributions to print in text mode")
	f.StringVar(&cfg.ThresholdsMode, "thresholds-mode", "", "Threshold source: fixed or reference")
	f.StringVar(&cfg.ReferencePath, "reference", os.Getenv("MLCDS_REFERENCE"), "Reference cohort parquet file (reference mode)")
	_ = scoreCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "score")

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	data, err := os.ReadFile(recordFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to read patient record")
		os.Exit(exitcode.InputError)
	}
	var rec model.PatientRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Error().Err(err).Msg("failed to parse patient record")
		os.Exit(exitcode.InputError)
	}

	svc, err := scoring.NewService(&cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("artifact load failed")
		os.Exit(exitcode.ArtifactError)
	}

	a, err := svc.Assess(&rec)
	if err != nil {
		log.Error().Err(err).Msg("assessment failed")
		os.Exit(exitcode.InputError)
	}

	if scoreJSON {
		out, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("ML-CDS score: %.4f\n", a.Score)
	fmt.Printf("Risk class:   %s\n", a.TierLabel)
	vec, _ := feature.Derive(&rec)
	derived := feature.Values(vec)
	fmt.Printf("RV coupling:  tapse_paps=%.4f  rvfws_paps=%.4f\n",
		derived["tapse_paps"], derived["rvfws_paps"])
	for _, w := range a.Warnings {
		fmt.Printf("Warning:      %s\n", w)
	}
	fmt.Println("Top contributions (margin space):")
	n := topN
	if n > len(a.Contributions) {
		n = len(a.Contributions)
	}
	for _, c := range a.Contributions[:n] {
		fmt.Printf("  %-28s %+.4f  (input %.4g)\n", c.Label, c.Shap, c.Value)
	}
	return nil
}
