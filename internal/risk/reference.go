package risk

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/auxcardio/mlcds/internal/model"
)

// ScoreColumn is the reference cohort column holding historical ML-CDS scores.
const ScoreColumn = "ml_cds_score"

// ReferenceRow is one row of the reference cohort Parquet file. Only the
// score column is consumed; other cohort columns are ignored.
type ReferenceRow struct {
	MLCDSScore float64 `parquet:"ml_cds_score"`
}

// LoadReferenceThresholds streams the score column of a reference cohort
// Parquet file and computes the quartile thresholds from it. This backs the
// calculator variant whose thresholds come from data instead of constants.
func LoadReferenceThresholds(path string) (model.Thresholds, error) {
	scores, err := readReferenceScores(path)
	if err != nil {
		return model.Thresholds{}, err
	}
	th, err := Quantiles(scores)
	if err != nil {
		return model.Thresholds{}, fmt.Errorf("reference cohort %s: %w", path, err)
	}
	return th, nil
}

func readReferenceScores(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference cohort: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat reference cohort: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	if err := validateReferenceSchema(pf.Schema()); err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[ReferenceRow](pf)
	defer reader.Close()

	scores := make([]float64, 0, reader.NumRows())
	buf := make([]ReferenceRow, 256)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			scores = append(scores, buf[i].MLCDSScore)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read reference rows: %w", readErr)
		}
	}
	return scores, nil
}

// validateReferenceSchema checks that the score column is present.
func validateReferenceSchema(schema *parquet.Schema) error {
	for _, field := range schema.Fields() {
		if strings.EqualFold(field.Name(), ScoreColumn) {
			return nil
		}
	}
	return fmt.Errorf("reference cohort is missing required column %q", ScoreColumn)
}
