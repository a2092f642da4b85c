// Package scoring wires the loaded artifacts into one immutable service:
// derive features, score, explain, classify. Everything the service holds is
// loaded exactly once at construction and read-only afterwards, so a single
// instance is shared across all requests without locking.
package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/auxcardio/mlcds/internal/config"
	"github.com/auxcardio/mlcds/internal/feature"
	"github.com/auxcardio/mlcds/internal/model"
	"github.com/auxcardio/mlcds/internal/risk"
	"github.com/auxcardio/mlcds/internal/schema"
	"github.com/auxcardio/mlcds/internal/shap"
	"github.com/auxcardio/mlcds/internal/xgboost"
)

// LoadError wraps a startup failure with the phase where it occurred.
// Per the error design there is no retry: a load failure permanently disables
// the scoring path for the process lifetime.
type LoadError struct {
	Phase string // "model", "schema", "explainer", "thresholds"
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Service is the process-wide scoring engine. Immutable after NewService.
type Service struct {
	booster    *xgboost.Booster
	explainer  *shap.TreeExplainer
	schema     schema.Schema
	thresholds model.Thresholds
	log        zerolog.Logger
}

// NewService loads the model artifact, validates its feature order against
// the schema, builds the explainer from the same booster instance, and
// resolves the risk thresholds. Each phase failure is tagged.
func NewService(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	booster, err := xgboost.Load(cfg.ModelPath)
	if err != nil {
		return nil, &LoadError{Phase: "model", Err: err}
	}
	log.Info().
		Str("path", cfg.ModelPath).
		Int("trees", booster.NumTrees()).
		Int("features", booster.NumFeatures()).
		Str("objective", booster.Objective()).
		Msg("model artifact loaded")

	if err := schema.Current.Validate(booster.FeatureNames()); err != nil {
		return nil, &LoadError{Phase: "schema", Err: err}
	}

	explainer := shap.NewTreeExplainer(booster)
	log.Info().
		Float64("expected_value", explainer.ExpectedValue()).
		Msg("explainer built")

	thresholds := risk.DefaultThresholds
	if cfg.ThresholdsMode == config.ThresholdsReference {
		thresholds, err = risk.LoadReferenceThresholds(cfg.ReferencePath)
		if err != nil {
			return nil, &LoadError{Phase: "thresholds", Err: err}
		}
	}
	log.Info().
		Str("source", thresholds.Source).
		Float64("q1", thresholds.Q1).
		Float64("median", thresholds.Median).
		Float64("q3", thresholds.Q3).
		Msg("risk thresholds resolved")

	return &Service{
		booster:    booster,
		explainer:  explainer,
		schema:     schema.Current,
		thresholds: thresholds,
		log:        log,
	}, nil
}

// Thresholds returns the active quartile cut points.
func (s *Service) Thresholds() model.Thresholds { return s.thresholds }

// Schema returns the feature layout the service scores against.
func (s *Service) Schema() schema.Schema { return s.schema }

// ModelInfo summarizes the loaded artifact for health reporting.
func (s *Service) ModelInfo() map[string]any {
	return map[string]any{
		"trees":          s.booster.NumTrees(),
		"features":       s.booster.NumFeatures(),
		"objective":      s.booster.Objective(),
		"schema_version": s.schema.Version,
	}
}

// Assess runs the full pipeline for one patient: derive features, score,
// explain, classify. Synchronous and side-effect free; the record is owned by
// the caller and discarded afterwards.
func (s *Service) Assess(rec *model.PatientRecord) (*model.Assessment, error) {
	start := time.Now()

	vec, warnings := feature.Derive(rec)

	score, err := s.booster.Predict(vec)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	phi, base, err := s.explainer.Shap(vec)
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	tier := risk.Classify(score, s.thresholds)

	contributions := make([]model.Contribution, len(phi))
	for i, f := range s.schema.Fields {
		contributions[i] = model.Contribution{
			Feature: f.Name,
			Label:   f.Label,
			Value:   vec[i],
			Shap:    phi[i],
		}
	}
	sort.SliceStable(contributions, func(i, j int) bool {
		return abs(contributions[i].Shap) > abs(contributions[j].Shap)
	})

	a := &model.Assessment{
		Score:         score,
		Tier:          tier,
		TierLabel:     tier.Label(),
		BaseValue:     base,
		Contributions: contributions,
		Warnings:      warnings,
		SchemaVersion: s.schema.Version,
		Thresholds:    s.thresholds,
		Elapsed:       time.Since(start),
	}

	s.log.Debug().
		Float64("score", score).
		Str("tier", string(tier)).
		Dur("elapsed", a.Elapsed).
		Msg("assessment complete")

	return a, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
