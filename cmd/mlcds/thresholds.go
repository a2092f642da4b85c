package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auxcardio/mlcds/internal/exitcode"
	"github.com/auxcardio/mlcds/internal/logging"
	"github.com/auxcardio/mlcds/internal/risk"
)

var referenceFile string

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Compute quartile thresholds from a reference cohort file",
	RunE:  runThresholds,
}

func init() {
	thresholdsCmd.Flags().StringVar(&referenceFile, "reference", "", "Reference cohort parquet file (required)")
	_ = thresholdsCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(thresholdsCmd)
}

func runThresholds(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, "thresholds")

	th, err := risk.LoadReferenceThresholds(referenceFile)
	if err != nil {
		log.Error().Err(err).Msg("threshold derivation failed")
		os.Exit(exitcode.ArtifactError)
	}

	fmt.Printf("Q1:     %.4f\nMedian: %.4f\nQ3:     %.4f\n", th.Q1, th.Median, th.Q3)
	fmt.Println("Tiers:")
	for _, tr := range risk.Legend(th) {
		switch {
		case tr.Min == nil:
			fmt.Printf("  %-12s score <= %.4f\n", tr.Label, *tr.Max)
		case tr.Max == nil:
			fmt.Printf("  %-12s score >  %.4f\n", tr.Label, *tr.Min)
		default:
			fmt.Printf("  %-12s %.4f < score <= %.4f\n", tr.Label, *tr.Min, *tr.Max)
		}
	}
	return nil
}
