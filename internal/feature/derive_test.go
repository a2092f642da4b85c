package feature

import (
	"math"
	"reflect"
	"testing"

	"github.com/auxcardio/mlcds/internal/model"
	"github.com/auxcardio/mlcds/internal/schema"
)

// testRecord mirrors the calculator's default patient.
func testRecord() *model.PatientRecord {
	return &model.PatientRecord{
		Age: 75, Sex: 0, NYHA: 1, CKD: 0, Rhythm: 0,
		LVEF: 55, LVGLS: 18, PALS: 25, LAVI: 40,
		TAPSE: 20, PAPs: 30, RVFWS: 22, EeRatio: 12,
		SVi: 35, LVMi: 110, MRGrade: 0, TRGrade: 0,
	}
}

func TestDerive_Ratios(t *testing.T) {
	vec, warnings := Derive(testRecord())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	ti, _ := schema.Current.Index("tapse_paps")
	ri, _ := schema.Current.Index("rvfws_paps")

	if got := math.Round(vec[ti]*1e4) / 1e4; got != 0.6667 {
		t.Errorf("tapse_paps = %v, want 0.6667", got)
	}
	if got := math.Round(vec[ri]*1e4) / 1e4; got != 0.7333 {
		t.Errorf("rvfws_paps = %v, want 0.7333", got)
	}

	// Exact division, not an approximation
	if vec[ti] != 20.0/30.0 {
		t.Errorf("tapse_paps must equal TAPSE/PAPs exactly, got %v", vec[ti])
	}
	if vec[ri] != 22.0/30.0 {
		t.Errorf("rvfws_paps must equal RVFWS/PAPs exactly, got %v", vec[ri])
	}
}

func TestDerive_ZeroPAPs(t *testing.T) {
	rec := testRecord()
	rec.PAPs = 0
	vec, warnings := Derive(rec)

	ti, _ := schema.Current.Index("tapse_paps")
	ri, _ := schema.Current.Index("rvfws_paps")
	if vec[ti] != 0 || vec[ri] != 0 {
		t.Errorf("zero PAPs must zero both ratios, got %v, %v", vec[ti], vec[ri])
	}
	if len(warnings) != 1 || warnings[0] != WarnPAPsUnmeasured {
		t.Errorf("expected %q warning, got %v", WarnPAPsUnmeasured, warnings)
	}
}

func TestDerive_NegativePAPs(t *testing.T) {
	// The HTTP boundary rejects negative pressures, but a record read from a
	// file bypasses it; the guard and the warning must still agree.
	rec := testRecord()
	rec.PAPs = -5
	vec, warnings := Derive(rec)

	ti, _ := schema.Current.Index("tapse_paps")
	ri, _ := schema.Current.Index("rvfws_paps")
	if vec[ti] != 0 || vec[ri] != 0 {
		t.Errorf("negative PAPs must zero both ratios, got %v, %v", vec[ti], vec[ri])
	}
	if len(warnings) != 1 || warnings[0] != WarnPAPsUnmeasured {
		t.Errorf("expected %q warning, got %v", WarnPAPsUnmeasured, warnings)
	}
}

func TestDerive_Idempotent(t *testing.T) {
	rec := testRecord()
	a, _ := Derive(rec)
	b, _ := Derive(rec)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated derivation must yield bit-identical vectors")
	}
}

func TestDerive_SchemaAlignment(t *testing.T) {
	vec, _ := Derive(testRecord())
	if len(vec) != len(schema.Current.Fields) {
		t.Fatalf("vector has %d values, schema has %d fields", len(vec), len(schema.Current.Fields))
	}

	want := map[string]float64{
		"age": 75, "sex": 0, "nyha": 1, "ckd": 0, "rhythm": 0,
		"LVEF": 55, "LVGLS": 18, "PALS": 25, "LAVI": 40,
		"TAPSE": 20, "PAPs": 30, "RVFWS": 22, "ee_ratio": 12,
		"SVi": 35, "LVMi": 110, "MRgrade": 0, "TRgrade": 0,
		"tapse_paps": 20.0 / 30.0, "rvfws_paps": 22.0 / 30.0,
	}
	got := Values(vec)
	for name, w := range want {
		if got[name] != w {
			t.Errorf("%s = %v, want %v", name, got[name], w)
		}
	}
}

func TestCouplingRatios_PositiveDenominator(t *testing.T) {
	for _, paps := range []float64{0.5, 10, 30, 120} {
		tp, rp := CouplingRatios(20, 22, paps)
		if tp != 20/paps || rp != 22/paps {
			t.Errorf("paps=%v: got %v, %v", paps, tp, rp)
		}
	}
}
