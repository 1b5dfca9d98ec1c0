package clinical

import "github.com/cardiac-report-server/internal/domain"

// ASMeasurements are the hemodynamic aortic stenosis parameters. Indexed
// values (AVAIndex, SVi) are derived by the caller from BSA.
type ASMeasurements struct {
	Vmax     *float64 `json:"vmax,omitempty"`      // m/s
	MeanGrad *float64 `json:"mean_grad,omitempty"` // mmHg
	AVA      *float64 `json:"ava,omitempty"`       // cm²
	AVAIndex *float64 `json:"ava_index,omitempty"` // cm²/m²
	SVi      *float64 `json:"svi,omitempty"`       // mL/m²
}

// AorticStenosisSeverity grades AS on the 0..3 scale, taking the worst grade
// across the available parameters. The cutoffs match the preview grading in
// the entry form.
func AorticStenosisSeverity(m ASMeasurements) domain.Severity {
	sev := domain.SeverityNone
	if m.Vmax != nil {
		switch {
		case *m.Vmax >= 4.0:
			sev = maxSeverity(sev, domain.SeveritySevere)
		case *m.Vmax >= 3.0:
			sev = maxSeverity(sev, domain.SeverityModerate)
		case *m.Vmax >= 2.6:
			sev = maxSeverity(sev, domain.SeverityMild)
		}
	}
	if m.MeanGrad != nil {
		switch {
		case *m.MeanGrad >= 40:
			sev = maxSeverity(sev, domain.SeveritySevere)
		case *m.MeanGrad >= 20:
			sev = maxSeverity(sev, domain.SeverityModerate)
		default:
			sev = maxSeverity(sev, domain.SeverityMild)
		}
	}
	if m.AVA != nil {
		switch {
		case *m.AVA <= 1.0:
			sev = maxSeverity(sev, domain.SeveritySevere)
		case *m.AVA <= 1.5:
			sev = maxSeverity(sev, domain.SeverityModerate)
		default:
			sev = maxSeverity(sev, domain.SeverityMild)
		}
	}
	if m.AVAIndex != nil {
		switch {
		case *m.AVAIndex <= 0.6:
			sev = maxSeverity(sev, domain.SeveritySevere)
		case *m.AVAIndex <= 0.85:
			sev = maxSeverity(sev, domain.SeverityModerate)
		default:
			sev = maxSeverity(sev, domain.SeverityMild)
		}
	}
	return sev
}

// StenosisLabel maps a severity to the AS label used in previews.
func StenosisLabel(s domain.Severity) string {
	switch s {
	case domain.SeveritySevere:
		return "Ernstige stenose"
	case domain.SeverityModerate:
		return "Matige stenose"
	case domain.SeverityMild:
		return "Milde stenose"
	default:
		return "Geen stenose"
	}
}

// AorticStenosisLabel returns the report label, which unlike the preview
// grading has a "Zeer ernstige stenose" tier and slightly different mild
// criteria.
func AorticStenosisLabel(m ASMeasurements) string {
	if (m.Vmax != nil && *m.Vmax > 5.0) || (m.MeanGrad != nil && *m.MeanGrad > 60) {
		return "Zeer ernstige stenose"
	}
	if (m.Vmax != nil && *m.Vmax >= 4.0) || (m.MeanGrad != nil && *m.MeanGrad >= 40) ||
		(m.AVA != nil && *m.AVA < 1.0) || (m.AVAIndex != nil && *m.AVAIndex < 0.6) {
		return "Ernstige stenose"
	}
	if (m.Vmax != nil && *m.Vmax >= 3.0) || (m.MeanGrad != nil && *m.MeanGrad >= 20) ||
		(m.AVA != nil && *m.AVA <= 1.5) || (m.AVAIndex != nil && *m.AVAIndex <= 0.85) {
		return "Matige stenose"
	}
	if (m.Vmax != nil && *m.Vmax >= 2.5) || (m.MeanGrad != nil && *m.MeanGrad >= 10) ||
		(m.AVA != nil && *m.AVA <= 2.0) {
		return "Milde stenose"
	}
	return "Geen stenose"
}

// IsSevereAS reports whether any parameter meets a severe-stenosis criterion.
func IsSevereAS(m ASMeasurements) bool {
	if m.Vmax != nil && *m.Vmax >= 4.0 {
		return true
	}
	if m.MeanGrad != nil && *m.MeanGrad >= 40 {
		return true
	}
	if m.AVA != nil && *m.AVA < 1.0 {
		return true
	}
	if m.AVAIndex != nil && *m.AVAIndex < 0.6 {
		return true
	}
	return false
}

// IsLowFlowLowGradient reports the low-flow low-gradient pattern: a severe
// valve area with a non-severe gradient and a reduced stroke volume index.
func IsLowFlowLowGradient(m ASMeasurements) bool {
	smallArea := (m.AVA != nil && *m.AVA < 1.0) || (m.AVAIndex != nil && *m.AVAIndex < 0.6)
	return smallArea &&
		m.MeanGrad != nil && *m.MeanGrad < 40 &&
		m.SVi != nil && *m.SVi <= 35
}

// LowFlowLowGradientNote is the annotation appended to the AK report line
// when the low-flow low-gradient pattern is present.
const LowFlowLowGradientNote = " (low-flow low-gradient patroon: AVA <1.0 cm² of indexed <0.6 cm²/m² met mean <40 mmHg en SVi <=35 mL/m²)"

func maxSeverity(a, b domain.Severity) domain.Severity {
	if b > a {
		return b
	}
	return a
}
