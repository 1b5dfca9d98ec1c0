package report

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/clinical"
	"github.com/cardiac-report-server/internal/domain"
)

// CycloComposer derives stress test metrics and renders the fietsproef
// report and its letter summary.
type CycloComposer struct {
	log *logrus.Logger
}

// NewCycloComposer creates a stress test composer.
func NewCycloComposer(logger *logrus.Logger) *CycloComposer {
	return &CycloComposer{log: logger}
}

// Metrics derives the predicted maximum heart rate, the estimated VO2 with
// its percentile band, and the predicted wattage for the record.
func (c *CycloComposer) Metrics(rec *domain.CycloRecord) domain.CycloMetrics {
	var m domain.CycloMetrics
	if rec == nil {
		return m
	}
	sex := rec.Sex()
	var age, weight *float64
	if rec.Patient != nil {
		age = rec.Patient.Age
		weight = rec.Patient.Weight
	}

	if age != nil {
		hr := clinical.TanakaMaxHR(*age)
		m.PredictedMaxHR = &hr
	}
	if m.PredictedMaxHR != nil && rec.MaxHR != nil && *rec.MaxHR > 0 {
		pct := domain.Round1(*rec.MaxHR / float64(*m.PredictedMaxHR) * 100.0)
		m.PctHRDisplay = &pct
	}

	if rec.MaxWatt != nil && *rec.MaxWatt > 0 && weight != nil {
		m.VO2Observed = clinical.VO2FromWatt(*rec.MaxWatt, *weight)
	}
	if m.VO2Observed != nil {
		txt := fmt.Sprintf("Observed VO2: %s ml·kg⁻¹·min⁻¹", f1(*m.VO2Observed))
		m.VO2ObservedText = &txt
		res := clinical.VO2Percentile(sex, age, *m.VO2Observed)
		m.VO2PercentilePct = domain.Float(res.PercentVsP50)
		m.VO2Band = domain.StringPtr(res.Band)
		m.VO2BandText = domain.StringPtr(res.BandText)
	}

	ref := clinical.VO2ReferenceFor(sex, age)
	if weight != nil && *weight > 0 {
		m.PredictedWatt = clinical.PredictedWattage(ref.P50, *weight)
		if m.PredictedWatt != nil && *m.PredictedWatt > 0 &&
			rec.MaxWatt != nil && *rec.MaxWatt > 0 {
			pct := domain.Round1(*rec.MaxWatt / *m.PredictedWatt * 100.0)
			m.PredictedWattPct = &pct
		}
	}

	var summary []string
	if m.PredictedMaxHR != nil {
		switch {
		case m.PctHRDisplay != nil:
			summary = append(summary, fmt.Sprintf(
				"Max HR: %s bpm (%s%% of predicted %d bpm)",
				f0(*rec.MaxHR), f1(*m.PctHRDisplay), *m.PredictedMaxHR))
		case rec.MaxHR != nil:
			summary = append(summary, fmt.Sprintf(
				"Max HR: %s bpm (predicted %d bpm)", f0(*rec.MaxHR), *m.PredictedMaxHR))
		}
	}
	if m.VO2Observed != nil {
		if m.VO2PercentilePct != nil && m.VO2Band != nil && m.VO2BandText != nil {
			summary = append(summary, fmt.Sprintf(
				"%s — %s%% vs 50e (%s: %s)",
				*m.VO2ObservedText, f1(*m.VO2PercentilePct), *m.VO2Band, *m.VO2BandText))
		} else {
			summary = append(summary, *m.VO2ObservedText)
		}
	}
	if m.PredictedWatt != nil {
		if m.PredictedWattPct != nil {
			summary = append(summary, fmt.Sprintf(
				"Wattage: %s W (%s%% of predicted %s W)",
				f0(*rec.MaxWatt), f1(*m.PredictedWattPct), f1(*m.PredictedWatt)))
		} else {
			summary = append(summary, fmt.Sprintf("Predicted wattage: %s W", f1(*m.PredictedWatt)))
		}
	}
	m.SummaryLines = summary
	return m
}

// Compose renders the stress test report. Missing numbers render as zero so
// an incomplete record still produces a complete sentence structure.
func (c *CycloComposer) Compose(rec *domain.CycloRecord, m domain.CycloMetrics) string {
	if rec == nil {
		rec = &domain.CycloRecord{}
	}
	startWatt := zeroWhenNil(rec.StartWatt)
	incrementWatt := zeroWhenNil(rec.IncrementWatt)
	maxWatt := zeroWhenNil(rec.MaxWatt)
	durationAtMax := zeroWhenNil(rec.DurationAtMax)
	maxHR := zeroWhenNil(rec.MaxHR)

	maxWattText := "Maximale belasting niet bereikt of niet gerapporteerd."
	if maxWatt > 0 {
		maxWattText = fmt.Sprintf("Maximale belasting tot %s Watt gedurende %s seconden.",
			f0(maxWatt), f0(durationAtMax))
	}

	pctText := ""
	if m.PredictedMaxHR != nil && maxHR > 0 {
		pct := domain.Round1(maxHR / float64(*m.PredictedMaxHR) * 100.0)
		if m.PctHRDisplay != nil {
			pct = *m.PctHRDisplay
		}
		pctText = fmt.Sprintf(" (%s%% predicted)", f1(pct))
	}

	vo2 := m.VO2Observed
	if vo2 == nil && rec.Patient != nil && rec.Patient.Weight != nil && maxWatt > 0 {
		vo2 = clinical.VO2FromWatt(maxWatt, *rec.Patient.Weight)
	}

	lines := []string{
		fmt.Sprintf("Start aan %s W. Opdrijven van de belasting met %s W om de minuut.",
			f0(startWatt), f0(incrementWatt)),
		maxWattText,
		fmt.Sprintf("Maximale hartslag bedraagt %s/min%s", f0(maxHR), pctText),
		fmt.Sprintf("%s. %s.", str(rec.BPEvolution), str(rec.Rhythm)),
		fmt.Sprintf("%s. Het criterium voor staken betreft %s.",
			str(rec.EffortType), str(rec.StopCriterium)),
		"",
		fmt.Sprintf("Het ECG vertoont %s tijdens inspanning of recuperatie.", str(rec.ECGChanges)),
		"",
		fmt.Sprintf("Conclusie: %s.", str(rec.Conclusion)),
	}

	if vo2 != nil {
		vo2Line := fmt.Sprintf("VO2 (ml·kg⁻¹·min⁻¹): %s", f1(*vo2))
		if m.VO2PercentilePct != nil && m.VO2Band != nil && m.VO2BandText != nil {
			vo2Line = fmt.Sprintf("VO2: %s ml·kg⁻¹·min⁻¹ (%s%% predicted) — Percentiel: %s (%s)",
				f1(*vo2), f1(*m.VO2PercentilePct), *m.VO2Band, *m.VO2BandText)
		}
		lines = append(lines[:3], append([]string{vo2Line}, lines[3:]...)...)
	}

	return strings.Join(lines, "\n")
}

// Brief returns the compact fietsproef summary for the consult letter.
func (c *CycloComposer) Brief(rec *domain.CycloRecord, m domain.CycloMetrics) string {
	var parts []string
	if rec != nil {
		if rec.MaxWatt != nil && *rec.MaxWatt > 0 {
			parts = append(parts, fmt.Sprintf("Max belasting %s W", f0(*rec.MaxWatt)))
		}
		if rec.MaxHR != nil && *rec.MaxHR > 0 {
			if m.PctHRDisplay != nil {
				parts = append(parts, fmt.Sprintf("HF %s bpm (%s%% voorspeld)",
					f0(*rec.MaxHR), f0(*m.PctHRDisplay)))
			} else {
				parts = append(parts, fmt.Sprintf("HF %s bpm", f0(*rec.MaxHR)))
			}
		}
		if m.VO2Observed != nil {
			if m.VO2PercentilePct != nil {
				parts = append(parts, fmt.Sprintf("VO₂ %s ml·kg⁻¹·min⁻¹ (%s%% vs p50)",
					f1(*m.VO2Observed), f0(*m.VO2PercentilePct)))
			} else {
				parts = append(parts, fmt.Sprintf("VO₂ %s ml·kg⁻¹·min⁻¹", f1(*m.VO2Observed)))
			}
		}
		if conclusion := strings.TrimSpace(str(rec.Conclusion)); conclusion != "" {
			parts = append(parts, conclusion)
		}
	}
	if len(parts) == 0 {
		return "Geen fietsproefgegevens beschikbaar."
	}
	return strings.Join(parts, "; ")
}

func zeroWhenNil(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func f0(v float64) string { return fmt.Sprintf("%.0f", v) }
func f1(v float64) string { return fmt.Sprintf("%.1f", v) }
