// mkrefcohort writes a small synthetic reference-cohort Parquet file for tests
// and local runs: one ml_cds_score column with a right-skewed spread roughly
// matching the derivation cohort's score distribution.
// Usage: go run ./cmd/mkrefcohort --out testdata/ref-cohort.parquet --rows 500
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/auxcardio/mlcds/internal/risk"
)

func main() {
	out := flag.String("out", "testdata/ref-cohort.parquet", "output parquet")
	rows := flag.Int("rows", 500, "number of cohort rows")
	seed := flag.Int64("seed", 1, "rng seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	cohort := make([]risk.ReferenceRow, *rows)
	for i := range cohort {
		// Log-normal centered near the published median score.
		cohort[i] = risk.ReferenceRow{MLCDSScore: math.Exp(rng.NormFloat64()*0.7 - 0.05)}
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	w := goparquet.NewGenericWriter[risk.ReferenceRow](f)
	if _, err := w.Write(cohort); err != nil {
		fmt.Fprintf(os.Stderr, "write rows: %v\n", err)
		os.Exit(1)
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close file: %v\n", err)
		os.Exit(1)
	}

	scores := make([]float64, len(cohort))
	for i, r := range cohort {
		scores[i] = r.MLCDSScore
	}
	th, err := risk.Quantiles(scores)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quantiles: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d rows to %s (Q1=%.4f median=%.4f Q3=%.4f)\n",
		len(cohort), *out, th.Q1, th.Median, th.Q3)
}
