// Package feature flattens a PatientRecord into the model's feature vector and
// computes the two engineered right-heart coupling ratios.
package feature

import (
	"github.com/auxcardio/mlcds/internal/model"
	"github.com/auxcardio/mlcds/internal/schema"
)

// WarnPAPsUnmeasured is attached to an assessment when the pulmonary pressure
// is not positive and the coupling ratios were substituted with 0. Whether zero means
// "unmeasured" or a true reading is a clinical policy question; the score
// contract keeps the substitution, the warning lets consumers surface it.
const WarnPAPsUnmeasured = "paps_unmeasured"

// Derive flattens rec into schema.Current order and computes tapse_paps and
// rvfws_paps. Both ratios are numerator/PAPs, substituted with 0 when PAPs is
// not positive; no other guard exists. Pure and deterministic: the same record
// always yields a bit-identical vector.
func Derive(rec *model.PatientRecord) (model.FeatureVector, []string) {
	tapsePAPs, rvfwsPAPs := CouplingRatios(rec.TAPSE, rec.RVFWS, rec.PAPs)

	var warnings []string
	if rec.PAPs <= 0 {
		warnings = append(warnings, WarnPAPsUnmeasured)
	}

	// Order must match schema.Current exactly; derive_test pins the alignment.
	vec := model.FeatureVector{
		float64(rec.Age),
		float64(rec.Sex),
		float64(rec.NYHA),
		float64(rec.CKD),
		float64(rec.Rhythm),
		rec.LVEF,
		rec.LVGLS,
		rec.PALS,
		rec.LAVI,
		rec.TAPSE,
		rec.PAPs,
		rec.RVFWS,
		rec.EeRatio,
		rec.SVi,
		rec.LVMi,
		float64(rec.MRGrade),
		float64(rec.TRGrade),
		tapsePAPs,
		rvfwsPAPs,
	}
	return vec, warnings
}

// CouplingRatios computes TAPSE/PAPs and RVFWS/PAPs with the zero-PAPs guard.
func CouplingRatios(tapse, rvfws, paps float64) (float64, float64) {
	if paps <= 0 {
		return 0, 0
	}
	return tapse / paps, rvfws / paps
}

// Values pairs the vector with its schema labels for presentation.
func Values(vec model.FeatureVector) map[string]float64 {
	out := make(map[string]float64, len(vec))
	for i, f := range schema.Current.Fields {
		out[f.Name] = vec[i]
	}
	return out
}
