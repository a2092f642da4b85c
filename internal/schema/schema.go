// Package schema is the authoritative definition of the feature vector layout.
// The trained model, the feature deriver, and the explainer all share this
// ordered field list; startup fails if the loaded artifact disagrees with it.
package schema

import (
	"fmt"
	"strings"
)

// Kind describes how a field's value is interpreted.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindBinary  Kind = "binary"
	KindOrdinal Kind = "ordinal"
	KindDerived Kind = "derived"
)

// Field is one position in the feature vector.
type Field struct {
	Name  string // name as declared by the trained model
	Label string // clinician-facing label
	Kind  Kind
}

// Schema is a versioned, ordered feature layout.
type Schema struct {
	Version string
	Fields  []Field
}

// Current is the feature layout the shipped ML-CDS model was trained with.
// Order is load-bearing: a silent mismatch here would produce wrong scores,
// which is why Validate is run against every loaded artifact.
var Current = Schema{
	Version: "v1",
	Fields: []Field{
		{Name: "age", Label: "Age (years)", Kind: KindNumeric},
		{Name: "sex", Label: "Biological Sex", Kind: KindBinary},
		{Name: "nyha", Label: "NYHA Class", Kind: KindOrdinal},
		{Name: "ckd", Label: "Severe Chronic Kidney Disease", Kind: KindBinary},
		{Name: "rhythm", Label: "Atrial Fibrillation", Kind: KindBinary},
		{Name: "LVEF", Label: "LVEF (%)", Kind: KindNumeric},
		{Name: "LVGLS", Label: "LVGLS (abs. %)", Kind: KindNumeric},
		{Name: "PALS", Label: "PALS (%)", Kind: KindNumeric},
		{Name: "LAVI", Label: "LAVI (ml/m²)", Kind: KindNumeric},
		{Name: "TAPSE", Label: "TAPSE (mm)", Kind: KindNumeric},
		{Name: "PAPs", Label: "PAPs (mmHg)", Kind: KindNumeric},
		{Name: "RVFWS", Label: "RVFWS (abs. %)", Kind: KindNumeric},
		{Name: "ee_ratio", Label: "E/e' ratio", Kind: KindNumeric},
		{Name: "SVi", Label: "SVi (ml/m²)", Kind: KindNumeric},
		{Name: "LVMi", Label: "LVMi (g/m²)", Kind: KindNumeric},
		{Name: "MRgrade", Label: "Mitral Regurgitation", Kind: KindBinary},
		{Name: "TRgrade", Label: "Tricuspid Regurgitation", Kind: KindBinary},
		{Name: "tapse_paps", Label: "TAPSE/PAPs", Kind: KindDerived},
		{Name: "rvfws_paps", Label: "RVFWS/PAPs", Kind: KindDerived},
	},
}

// FeatureNames returns the field names in vector order.
func (s Schema) FeatureNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Index returns the vector position of the named field, or ok=false.
func (s Schema) Index(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Validate checks that the model's declared feature names match this schema
// exactly: same fields, same order, nothing missing, nothing extra.
func (s Schema) Validate(names []string) error {
	if len(names) != len(s.Fields) {
		return fmt.Errorf("model declares %d features, schema %s expects %d [%s]",
			len(names), s.Version, len(s.Fields), strings.Join(s.diff(names), "; "))
	}
	for i, name := range names {
		if name != s.Fields[i].Name {
			return fmt.Errorf("feature order mismatch at position %d: model has %q, schema %s expects %q",
				i, name, s.Version, s.Fields[i].Name)
		}
	}
	return nil
}

// diff reports which fields are missing from or extra in the given name list.
func (s Schema) diff(names []string) []string {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	var out []string
	for _, f := range s.Fields {
		if !have[f.Name] {
			out = append(out, "missing "+f.Name)
		}
	}
	want := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		want[f.Name] = true
	}
	for _, n := range names {
		if !want[n] {
			out = append(out, "extra "+n)
		}
	}
	return out
}
