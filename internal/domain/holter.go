package domain

// HolterRecord is the structured input for Holter monitoring interpretation.
type HolterRecord struct {
	Patient                *PatientContext `json:"patient"`
	RecordingDate          *string         `json:"recording_date,omitempty"`
	RecordingDurationHours *int            `json:"recording_duration_hours,omitempty"`
	AvgHR                  *int            `json:"avg_hr,omitempty"`
	MinHR                  *int            `json:"min_hr,omitempty"`
	MaxHR                  *int            `json:"max_hr,omitempty"`
	AfibPercentage         *float64        `json:"afib_percentage,omitempty"`
	PausesCount            *int            `json:"pauses_count,omitempty"`
	LongestPauseMs         *int            `json:"longest_pause_ms,omitempty"`
	VESCount               *int            `json:"ves_count,omitempty"`
	SVESCount              *int            `json:"sves_count,omitempty"`
	AVBlockType            *string         `json:"av_block_type,omitempty"`
	OtherFindings          *string         `json:"other_findings,omitempty"`
}

// HolterMetrics holds the derived findings flags and summary.
type HolterMetrics struct {
	BradyFlag         bool     `json:"brady_flag"`
	TachyFlag         bool     `json:"tachy_flag"`
	AfibDetected      bool     `json:"afib_detected"`
	SignificantPauses bool     `json:"significant_pauses"`
	FrequentVES       bool     `json:"frequent_ves"`
	FrequentSVES      bool     `json:"frequent_sves"`
	AVBlockDetected   bool     `json:"av_block_detected"`
	SummaryLines      []string `json:"summary_lines,omitempty"`
}
