package domain

// EchoRecord is the structured payload for the echo interpretation engine.
// Numeric fields are pointers so that an absent measurement is distinguishable
// from zero; label fields carry the clinician's (or the auto-classifier's)
// chosen Dutch phrasing.
type EchoRecord struct {
	Patient *PatientContext `json:"patient"`

	// Left ventricle: wall thickness, mass and geometry.
	LVHypertrophyChoice *string  `json:"lv_hypertrofie_choice,omitempty"`
	LVHypertrophyAuto   *string  `json:"lv_hypertrofie_auto,omitempty"`
	IVSd                *float64 `json:"ivsd,omitempty"`
	LVPW                *float64 `json:"lvpw,omitempty"`
	MassIndex           *float64 `json:"mass_index,omitempty"`
	RWT                 *float64 `json:"rwt,omitempty"`

	// Left ventricle: dimensions and systolic function.
	LVDilatationChoice *string  `json:"lv_dilatatie_choice,omitempty"`
	LVDilatationAuto   *string  `json:"lv_dilatatie_auto,omitempty"`
	LVIDd              *float64 `json:"lvidd,omitempty"`
	SystolicOption     *string  `json:"systolic_option,omitempty"`
	LVEF               *float64 `json:"lvef,omitempty"`

	// Diastology and left atrium.
	DiastolicFunction *string  `json:"lv_diastolische_functie,omitempty"`
	LAChoice          *string  `json:"la_choice,omitempty"`
	LASuggested       *string  `json:"la_suggested,omitempty"`
	LAVI              *float64 `json:"lavi,omitempty"`

	// Right heart.
	RVHypertrophy *string  `json:"rv_hypertrofie,omitempty"`
	RVFWd         *float64 `json:"rvfwd_val,omitempty"`
	RVBDd         *float64 `json:"rvbd_val,omitempty"`
	RVMDd         *float64 `json:"rvmd_val,omitempty"`
	TAPSE         *float64 `json:"tapse,omitempty"`
	RVDilatation  *string  `json:"rv_dilatatie,omitempty"`
	RVFunction    *string  `json:"rv_functie,omitempty"`
	PASPText      *string  `json:"pasp_text,omitempty"`
	RAVI          *float64 `json:"ravi_val,omitempty"`
	RADilatation  *string  `json:"ra_dilatatie,omitempty"`

	// Valves.
	AKMorphology    *string `json:"ak_morfologie,omitempty"`
	AKCalcification *string `json:"ak_calcificatie,omitempty"`
	AKStenosis      *string `json:"ak_stenose,omitempty"`
	AKRegurgitation *string `json:"ak_regurgitatie,omitempty"`
	MKRegurgitation *string `json:"mk_regurgitatie,omitempty"`
	TKRegurgitation *string `json:"tk_regurgitatie,omitempty"`
	PKRegurgitation *string `json:"pk_regurgitatie,omitempty"`

	// Venous return.
	IVCDilatation *string `json:"ivc_dilatatie,omitempty"`
	IVCVariation  *string `json:"ivc_variatie,omitempty"`
	CVD           *string `json:"cvd,omitempty"`

	// Raw measurements that feed the graders but are not report fields
	// themselves (aorta segments, AS hemodynamics, regurgitation
	// quantification). Mirrors the loose key/value entry of the front end.
	Measurements map[string]float64 `json:"measurements,omitempty"`

	// Boolean clinical context (symptoms, rhythm) for the guideline engine.
	Flags map[string]bool `json:"flags,omitempty"`
}

// Flag returns a named boolean flag, false when absent.
func (e *EchoRecord) Flag(key string) bool {
	if e == nil || e.Flags == nil {
		return false
	}
	return e.Flags[key]
}

// Measurement returns a named raw measurement, or nil when absent.
func (e *EchoRecord) Measurement(key string) *float64 {
	if e == nil || e.Measurements == nil {
		return nil
	}
	v, ok := e.Measurements[key]
	if !ok {
		return nil
	}
	return &v
}

// SetMeasurement stores a named raw measurement, allocating the map lazily.
func (e *EchoRecord) SetMeasurement(key string, v float64) {
	if e.Measurements == nil {
		e.Measurements = make(map[string]float64)
	}
	e.Measurements[key] = v
}

// Sex returns the patient sex, defaulting to Male when no patient is set
// so the sex-specific tables always have a branch to take.
func (e *EchoRecord) Sex() Sex {
	if e == nil || e.Patient == nil {
		return Male
	}
	return e.Patient.Sex
}

// BSA returns the patient body surface area, 0 when unknown.
func (e *EchoRecord) BSA() float64 {
	if e == nil || e.Patient == nil {
		return 0
	}
	return e.Patient.BodySurfaceArea()
}
