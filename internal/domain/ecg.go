package domain

// ECGRecord is the structured input extracted from an ECG PDF or entered
// manually.
type ECGRecord struct {
	Patient           *PatientContext `json:"patient"`
	RecordedAt        *string         `json:"recorded_at,omitempty"`
	VentRate          *float64        `json:"vent_rate,omitempty"`
	PDurationMs       *float64        `json:"p_duration_ms,omitempty"`
	PRIntervalMs      *float64        `json:"pr_interval_ms,omitempty"`
	QRSDurationMs     *float64        `json:"qrs_duration_ms,omitempty"`
	QTIntervalMs      *float64        `json:"qt_interval_ms,omitempty"`
	QTcIntervalMs     *float64        `json:"qtc_interval_ms,omitempty"`
	PAxisDeg          *float64        `json:"p_axis_deg,omitempty"`
	QRSAxisDeg        *float64        `json:"qrs_axis_deg,omitempty"`
	TAxisDeg          *float64        `json:"t_axis_deg,omitempty"`
	RhythmSummary     *string         `json:"rhythm_summary,omitempty"`
	AutoReportText    *string         `json:"auto_report_text,omitempty"`
	AcquisitionDevice *string         `json:"acquisition_device,omitempty"`
}

// ECGMetrics holds the derived ECG values.
type ECGMetrics struct {
	QTcBazettMs     *float64 `json:"qtcb_ms,omitempty"`
	QTcFridericiaMs *float64 `json:"qtcf_ms,omitempty"`
	TachyFlag       bool     `json:"tachy_flag"`
	BradyFlag       bool     `json:"brady_flag"`
	AxisDeviation   *string  `json:"axis_deviation,omitempty"`
	SummaryLines    []string `json:"summary_lines,omitempty"`
}
