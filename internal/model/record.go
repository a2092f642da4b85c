package model

// PatientRecord holds one patient's raw inputs for a single assessment.
// Records are ephemeral: built per request, scored, and discarded.
//
// Categorical fields arrive pre-normalized to {0,1}; NYHA is ordinal 1-4.
// The binding tags carry the clinically plausible ranges enforced at the
// HTTP boundary (the widest published ranges for each measurement).
type PatientRecord struct {
	// Patient-related factors
	Age    int `json:"age" binding:"required,gte=18,lte=110"`
	Sex    int `json:"sex" binding:"gte=0,lte=1"` // 0 = female, 1 = male
	NYHA   int `json:"nyha" binding:"required,gte=1,lte=4"`
	CKD    int `json:"ckd" binding:"gte=0,lte=1"`    // severe chronic kidney disease (eGFR < 30)
	Rhythm int `json:"rhythm" binding:"gte=0,lte=1"` // atrial fibrillation

	// Left ventricle & atrium
	LVEF    float64 `json:"lvef" binding:"required,gte=20,lte=80"`     // ejection fraction, %
	LVGLS   float64 `json:"lvgls" binding:"required,gte=5,lte=25"`     // global longitudinal strain, abs %
	PALS    float64 `json:"pals" binding:"gte=0,lte=50"`               // peak atrial longitudinal strain, %
	LAVI    float64 `json:"lavi" binding:"required,gte=15,lte=100"`    // left atrial volume index, ml/m2
	SVi     float64 `json:"svi" binding:"required,gte=15,lte=70"`      // stroke volume index, ml/m2
	LVMi    float64 `json:"lvmi" binding:"required,gte=50,lte=250"`    // left ventricular mass index, g/m2
	EeRatio float64 `json:"ee_ratio" binding:"required,gte=4,lte=50"`  // E/e' tissue velocity ratio

	// Right ventricle & pulmonary circulation
	PAPs  float64 `json:"paps" binding:"gte=0,lte=120"`          // systolic pulmonary artery pressure, mmHg
	TAPSE float64 `json:"tapse" binding:"required,gte=5,lte=40"` // tricuspid annular plane systolic excursion, mm
	RVFWS float64 `json:"rvfws" binding:"required,gte=5,lte=40"` // right ventricular free wall strain, abs %

	// Valvular regurgitation (0 = none/mild, 1 = moderate/severe)
	MRGrade int `json:"mr_grade" binding:"gte=0,lte=1"`
	TRGrade int `json:"tr_grade" binding:"gte=0,lte=1"`
}

// FeatureVector is a PatientRecord flattened into the model's declared feature
// order. Index i corresponds to schema.Current.Fields[i].
type FeatureVector []float64
