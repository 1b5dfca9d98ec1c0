package domain

// CycloRecord is the structured input for bicycle stress test interpretation.
type CycloRecord struct {
	Patient       *PatientContext `json:"patient"`
	StartWatt     *float64        `json:"start_watt,omitempty"`
	IncrementWatt *float64        `json:"increment_watt,omitempty"`
	MaxWatt       *float64        `json:"max_watt,omitempty"`
	DurationAtMax *float64        `json:"duration_at_max,omitempty"`
	MaxHR         *float64        `json:"max_hr,omitempty"`
	BPEvolution   *string         `json:"bp_evolutie,omitempty"`
	Rhythm        *string         `json:"ritme,omitempty"`
	EffortType    *string         `json:"effort_type,omitempty"`
	StopCriterium *string         `json:"stop_criterium,omitempty"`
	ECGChanges    *string         `json:"ecg_changes,omitempty"`
	Conclusion    *string         `json:"conclusion,omitempty"`
}

// Sex returns the patient sex, defaulting to Male when no patient is set.
func (c *CycloRecord) Sex() Sex {
	if c == nil || c.Patient == nil {
		return Male
	}
	return c.Patient.Sex
}

// CycloMetrics holds the derived values for the stress test report.
type CycloMetrics struct {
	PredictedMaxHR   *int     `json:"predicted_max_hr,omitempty"`
	PctHRDisplay     *float64 `json:"pct_hr_display,omitempty"`
	VO2Observed      *float64 `json:"vo2_observed,omitempty"`
	VO2ObservedText  *string  `json:"vo2_observed_text,omitempty"`
	VO2PercentilePct *float64 `json:"vo2_percentile_pct,omitempty"`
	VO2Band          *string  `json:"vo2_band,omitempty"`
	VO2BandText      *string  `json:"vo2_band_text,omitempty"`
	PredictedWatt    *float64 `json:"wpred,omitempty"`
	PredictedWattPct *float64 `json:"wpred_pct,omitempty"`
	SummaryLines     []string `json:"summary_lines,omitempty"`
}
