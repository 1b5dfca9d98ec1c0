package domain

// LeadMeasurements is a snapshot of per-lead measurements during a CIED
// follow-up. Values stay free text: the programmer printout units vary per
// vendor and the report quotes them verbatim.
type LeadMeasurements struct {
	Sensing     *string `json:"sensing,omitempty"`
	Impedance   *string `json:"impedance,omitempty"`
	ThresholdV  *string `json:"threshold_v,omitempty"`
	ThresholdMs *string `json:"threshold_ms,omitempty"`
	Polarity    *string `json:"polarity,omitempty"`
	Stable      *bool   `json:"stable,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// IsStable reports lead stability, defaulting to stable when not recorded.
func (l *LeadMeasurements) IsStable() bool {
	if l == nil || l.Stable == nil {
		return true
	}
	return *l.Stable
}

// CIEDMetrics carries the programming advice derived from the patient and
// the programmed rates. AdviceLines holds the rendered suggestion captions
// in follow-up order.
type CIEDMetrics struct {
	MyPACELowerRate   *int
	PredictedMaxHR    *int
	SuggestedTracking *int
	AVDelayReduction  int
	OptimalPVARPMs    *int
	SensedFromPacedMs *int
	AdviceLines       []string
}

// CIEDRecord is the structured payload for device follow-up reporting.
type CIEDRecord struct {
	Patient          *PatientContext  `json:"patient,omitempty"`
	LVEF             *float64         `json:"lvef,omitempty"`
	DeviceType       *string          `json:"device_type,omitempty"`
	DeviceBrand      *string          `json:"device_brand,omitempty"`
	ProgrammingMode  *string          `json:"programming_mode,omitempty"`
	LowerRate        *int             `json:"lower_rate,omitempty"`
	UpperTracking    *int             `json:"upper_tracking,omitempty"`
	IndicationText   *string          `json:"indication_text,omitempty"`
	LeadRA           bool             `json:"lead_ra"`
	LeadRV           bool             `json:"lead_rv"`
	LeadLV           bool             `json:"lead_lv"`
	OtherLeads       *string          `json:"other_leads,omitempty"`
	SensingOK        bool             `json:"sensing_ok"`
	PacingOK         bool             `json:"pacing_ok"`
	ImpedanceOK      bool             `json:"impedance_ok"`
	EGMEvents        *string          `json:"egm_events,omitempty"`
	AtrialPacingPct  *string          `json:"atrial_pacing_pct,omitempty"`
	VentPacingPct    *string          `json:"ventricular_pacing_pct,omitempty"`
	LVPacingPct      *string          `json:"lv_pacing_pct,omitempty"`
	SettingsChanged  bool             `json:"settings_changed"`
	PatientDependent bool             `json:"patient_dependent"`
	BatteryStatus    *string          `json:"battery_status,omitempty"`
	SuggestedSensedAV *int            `json:"suggested_sensed_av,omitempty"`
	SuggestedPacedAV  *int            `json:"suggested_paced_av,omitempty"`
	SensedAVDelay    *string          `json:"sensed_av_delay,omitempty"`
	PacedAVDelay     *string          `json:"paced_av_delay,omitempty"`
	AtrialLead       LeadMeasurements `json:"atrial_fields"`
	VentLead         LeadMeasurements `json:"vent_fields"`
	LVLead           LeadMeasurements `json:"lv_fields"`
}
