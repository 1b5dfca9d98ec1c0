package report

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/domain"
)

// HolterComposer flags the rhythm findings on a Holter recording and renders
// the monitoring report.
type HolterComposer struct {
	log *logrus.Logger
}

// NewHolterComposer creates a Holter composer.
func NewHolterComposer(logger *logrus.Logger) *HolterComposer {
	return &HolterComposer{log: logger}
}

// Metrics derives the finding flags. Bradycardie below 40 bpm, tachycardie
// above 120 bpm, significant pauses above 2000 ms, frequent ectopy above
// 1000 complexes.
func (c *HolterComposer) Metrics(rec *domain.HolterRecord) domain.HolterMetrics {
	var m domain.HolterMetrics
	if rec == nil {
		return m
	}
	var summary []string

	if rec.RecordingDurationHours != nil && *rec.RecordingDurationHours > 0 {
		summary = append(summary, fmt.Sprintf("Registratieduur: %d uur", *rec.RecordingDurationHours))
	}
	if rec.AvgHR != nil {
		summary = append(summary, fmt.Sprintf("Gemiddelde hartfrequentie: %d bpm", *rec.AvgHR))
	}
	if rec.MinHR != nil {
		m.BradyFlag = *rec.MinHR < 40
		line := fmt.Sprintf("Minimale hartfrequentie: %d bpm", *rec.MinHR)
		if m.BradyFlag {
			line += " (bradycardie)"
		}
		summary = append(summary, line)
	}
	if rec.MaxHR != nil {
		m.TachyFlag = *rec.MaxHR > 120
		line := fmt.Sprintf("Maximale hartfrequentie: %d bpm", *rec.MaxHR)
		if m.TachyFlag {
			line += " (tachycardie)"
		}
		summary = append(summary, line)
	}
	if rec.AfibPercentage != nil && *rec.AfibPercentage > 0 {
		m.AfibDetected = true
		summary = append(summary, fmt.Sprintf("Atriumfibrilleren: %s%% van de tijd", fmtPct(*rec.AfibPercentage)))
	}
	if rec.PausesCount != nil && *rec.PausesCount > 0 {
		m.SignificantPauses = rec.LongestPauseMs != nil && *rec.LongestPauseMs > 2000
		line := fmt.Sprintf("Pauzes: %d", *rec.PausesCount)
		if rec.LongestPauseMs != nil {
			line += fmt.Sprintf(" (langste: %d ms)", *rec.LongestPauseMs)
		}
		if m.SignificantPauses {
			line += " - significant"
		}
		summary = append(summary, line)
	}
	if rec.VESCount != nil {
		m.FrequentVES = *rec.VESCount > 1000
		line := fmt.Sprintf("VES: %d", *rec.VESCount)
		if m.FrequentVES {
			line += " (frequent)"
		}
		summary = append(summary, line)
	}
	if rec.SVESCount != nil {
		m.FrequentSVES = *rec.SVESCount > 1000
		line := fmt.Sprintf("SVES: %d", *rec.SVESCount)
		if m.FrequentSVES {
			line += " (frequent)"
		}
		summary = append(summary, line)
	}
	if rec.AVBlockType != nil && *rec.AVBlockType != "" {
		m.AVBlockDetected = true
		summary = append(summary, fmt.Sprintf("AV-blok: %s", *rec.AVBlockType))
	}

	m.SummaryLines = summary
	return m
}

// Compose renders the Holter monitoring report with its conclusion list.
func (c *HolterComposer) Compose(rec *domain.HolterRecord, m domain.HolterMetrics) string {
	if rec == nil {
		rec = &domain.HolterRecord{}
	}
	var lines []string

	if rec.RecordingDate != nil && *rec.RecordingDate != "" {
		lines = append(lines, fmt.Sprintf("Holter-monitoring geregistreerd op %s.", *rec.RecordingDate))
	} else {
		lines = append(lines, "Holter-monitoring registratie.")
	}
	if rec.RecordingDurationHours != nil && *rec.RecordingDurationHours > 0 {
		lines = append(lines, fmt.Sprintf("Registratieduur: %d uur.", *rec.RecordingDurationHours))
	}

	var hr []string
	if rec.AvgHR != nil {
		hr = append(hr, fmt.Sprintf("gemiddelde hartfrequentie %d bpm", *rec.AvgHR))
	}
	if rec.MinHR != nil {
		hr = append(hr, fmt.Sprintf("minimum %d bpm", *rec.MinHR))
	}
	if rec.MaxHR != nil {
		hr = append(hr, fmt.Sprintf("maximum %d bpm", *rec.MaxHR))
	}
	if len(hr) > 0 {
		lines = append(lines, "Hartfrequentie: "+strings.Join(hr, ", ")+".")
	}

	if m.BradyFlag {
		lines = append(lines, "Er werd bradycardie vastgesteld.")
	}
	if m.TachyFlag {
		lines = append(lines, "Er werden episoden van tachycardie waargenomen.")
	}

	var findings []string
	if m.AfibDetected && rec.AfibPercentage != nil {
		pct := fmtPct(*rec.AfibPercentage)
		switch {
		case *rec.AfibPercentage >= 50:
			findings = append(findings, fmt.Sprintf(
				"Er werd permanent atriumfibrilleren vastgesteld (%s%% van de tijd).", pct))
		case *rec.AfibPercentage >= 10:
			findings = append(findings, fmt.Sprintf(
				"Er werden frequente episoden van atriumfibrilleren waargenomen (%s%% van de tijd).", pct))
		default:
			findings = append(findings, fmt.Sprintf(
				"Er werden incidentele episoden van atriumfibrilleren waargenomen (%s%% van de tijd).", pct))
		}
	}

	if rec.PausesCount != nil && *rec.PausesCount > 0 {
		pause := fmt.Sprintf("%d pauze(s)", *rec.PausesCount)
		if rec.LongestPauseMs != nil {
			pause += fmt.Sprintf(" met een maximale duur van %d ms", *rec.LongestPauseMs)
		}
		if m.SignificantPauses {
			findings = append(findings, fmt.Sprintf("Er werden significante pauzes geregistreerd: %s.", pause))
		} else {
			findings = append(findings, fmt.Sprintf("Er werden %s geregistreerd.", pause))
		}
	}

	var ectopy []string
	if rec.VESCount != nil && *rec.VESCount > 0 {
		descriptor := ""
		if m.FrequentVES {
			descriptor = "frequente "
		}
		ectopy = append(ectopy, fmt.Sprintf("%sventriculaire extrasystolen (VES: %d)", descriptor, *rec.VESCount))
	}
	if rec.SVESCount != nil && *rec.SVESCount > 0 {
		descriptor := ""
		if m.FrequentSVES {
			descriptor = "frequente "
		}
		ectopy = append(ectopy, fmt.Sprintf("%ssupraventriculaire extrasystolen (SVES: %d)", descriptor, *rec.SVESCount))
	}
	if len(ectopy) > 0 {
		findings = append(findings, "Er werden "+strings.Join(ectopy, " en ")+" waargenomen.")
	}

	if m.AVBlockDetected && rec.AVBlockType != nil {
		findings = append(findings, fmt.Sprintf("Er werd %s vastgesteld.", *rec.AVBlockType))
	}

	if len(findings) == 0 {
		findings = append(findings, "Geen significante ritmestoornissen waargenomen.")
	}
	lines = append(lines, findings...)

	if rec.OtherFindings != nil && strings.TrimSpace(*rec.OtherFindings) != "" {
		lines = append(lines, fmt.Sprintf("Overige bevindingen: %s.", strings.TrimSpace(*rec.OtherFindings)))
	}

	lines = append(lines, "\nConclusie:")
	var conclusions []string
	if m.AfibDetected {
		conclusions = append(conclusions, "- Atriumfibrilleren gedocumenteerd")
	}
	if m.BradyFlag {
		conclusions = append(conclusions, "- Bradycardie")
	}
	if m.TachyFlag {
		conclusions = append(conclusions, "- Tachycardie")
	}
	if m.SignificantPauses {
		conclusions = append(conclusions, "- Significante pauzes")
	}
	if m.FrequentVES {
		conclusions = append(conclusions, "- Frequente ventriculaire extrasystolen")
	}
	if m.FrequentSVES {
		conclusions = append(conclusions, "- Frequente supraventriculaire extrasystolen")
	}
	if m.AVBlockDetected && rec.AVBlockType != nil {
		conclusions = append(conclusions, "- "+*rec.AVBlockType)
	}
	if len(conclusions) == 0 {
		conclusions = append(conclusions, "- Geen afwijkingen geregistreerd tijdens Holter-monitoring")
	}
	lines = append(lines, conclusions...)

	return strings.Join(lines, "\n")
}

// Brief returns the compact Holter summary for the consult letter.
func (c *HolterComposer) Brief(rec *domain.HolterRecord, m domain.HolterMetrics) string {
	var parts []string
	if rec == nil {
		rec = &domain.HolterRecord{}
	}
	if rec.RecordingDurationHours != nil && *rec.RecordingDurationHours > 0 {
		parts = append(parts, fmt.Sprintf("Holter-monitoring (%du)", *rec.RecordingDurationHours))
	}
	if rec.AvgHR != nil {
		parts = append(parts, fmt.Sprintf("Gem. HR: %d bpm", *rec.AvgHR))
	}
	if m.AfibDetected && rec.AfibPercentage != nil {
		parts = append(parts, fmt.Sprintf("AFIB: %s%%", fmtPct(*rec.AfibPercentage)))
	}
	if m.SignificantPauses {
		parts = append(parts, "Significante pauzes")
	}
	if m.FrequentVES && rec.VESCount != nil {
		parts = append(parts, fmt.Sprintf("Frequente VES (%d)", *rec.VESCount))
	}
	if m.FrequentSVES && rec.SVESCount != nil {
		parts = append(parts, fmt.Sprintf("Frequente SVES (%d)", *rec.SVESCount))
	}
	if len(parts) == 0 {
		return "Holter-monitoring uitgevoerd"
	}
	return strings.Join(parts, "; ")
}

// fmtPct prints a percentage without a trailing zero decimal.
func fmtPct(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
