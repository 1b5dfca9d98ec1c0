package report

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/clinical"
	"github.com/cardiac-report-server/internal/domain"
)

// ECGComposer derives rate-corrected intervals and axis interpretation and
// renders the resting ECG report.
type ECGComposer struct {
	log *logrus.Logger
}

// NewECGComposer creates an ECG composer.
func NewECGComposer(logger *logrus.Logger) *ECGComposer {
	return &ECGComposer{log: logger}
}

// Metrics computes QTc by Bazett and Fridericia, rate flags and the axis
// interpretation. A pre-corrected QTc on the record is the fallback for both
// formulas when raw QT or rate is missing.
func (c *ECGComposer) Metrics(rec *domain.ECGRecord) domain.ECGMetrics {
	var m domain.ECGMetrics
	if rec == nil {
		return m
	}

	if rec.QTIntervalMs != nil && rec.VentRate != nil {
		m.QTcBazettMs = clinical.QTcBazett(*rec.QTIntervalMs, *rec.VentRate)
		m.QTcFridericiaMs = clinical.QTcFridericia(*rec.QTIntervalMs, *rec.VentRate)
	} else if rec.QTcIntervalMs != nil {
		v := domain.Round1(*rec.QTcIntervalMs)
		m.QTcBazettMs = &v
		m.QTcFridericiaMs = &v
	}

	m.TachyFlag = rec.VentRate != nil && *rec.VentRate > 100
	m.BradyFlag = rec.VentRate != nil && *rec.VentRate < 50

	if rec.QRSAxisDeg != nil {
		var deviation string
		switch {
		case *rec.QRSAxisDeg < -30:
			deviation = "Linkerasdeviatie"
		case *rec.QRSAxisDeg > 90:
			deviation = "Rechterasdeviatie"
		default:
			deviation = "Normale QRS-as"
		}
		m.AxisDeviation = &deviation
	}

	var summary []string
	if s := strings.TrimSpace(str(rec.RhythmSummary)); s != "" {
		summary = append(summary, "Ritme: "+s)
	}
	if rec.VentRate != nil {
		summary = append(summary, fmt.Sprintf("Frequentie: %s bpm", f0(*rec.VentRate)))
	}
	if rec.PRIntervalMs != nil {
		summary = append(summary, fmt.Sprintf("PR %s ms", f0(*rec.PRIntervalMs)))
	}
	if rec.PDurationMs != nil {
		summary = append(summary, fmt.Sprintf("P duur %s ms", f0(*rec.PDurationMs)))
	}
	if rec.QRSDurationMs != nil {
		summary = append(summary, fmt.Sprintf("QRS %s ms", f0(*rec.QRSDurationMs)))
	}
	if rec.QTIntervalMs != nil {
		summary = append(summary, qtLine(*rec.QTIntervalMs, m.QTcBazettMs, m.QTcFridericiaMs))
	}
	if m.AxisDeviation != nil {
		summary = append(summary, *m.AxisDeviation)
	}
	m.SummaryLines = summary
	return m
}

func qtLine(qtMs float64, qtcb, qtcf *float64) string {
	line := fmt.Sprintf("QT %s ms", f0(qtMs))
	switch {
	case qtcb != nil && qtcf != nil:
		line += fmt.Sprintf(" (QTcB %s ms; QTcF %s ms)", f0(*qtcb), f0(*qtcf))
	case qtcb != nil:
		line += fmt.Sprintf(" (QTcB %s ms)", f0(*qtcb))
	case qtcf != nil:
		line += fmt.Sprintf(" (QTcF %s ms)", f0(*qtcf))
	}
	return line
}

// Compose renders the resting ECG report. The T-axis and the acquisition
// device are captured but deliberately left out of the text.
func (c *ECGComposer) Compose(rec *domain.ECGRecord, m domain.ECGMetrics) string {
	if rec == nil {
		rec = &domain.ECGRecord{}
	}
	var lines []string
	if rec.RecordedAt != nil && *rec.RecordedAt != "" {
		lines = append(lines, fmt.Sprintf("ECG geregistreerd op %s.", *rec.RecordedAt))
	} else {
		lines = append(lines, "Normaal sinusaal ritme.")
	}

	if s := strings.TrimSpace(str(rec.RhythmSummary)); s != "" {
		lines = append(lines, fmt.Sprintf("Ritme: %s.", s))
	}

	var intervals []string
	if rec.VentRate != nil {
		intervals = append(intervals, fmt.Sprintf("Frequentie %s bpm", f0(*rec.VentRate)))
	}
	if rec.PRIntervalMs != nil {
		intervals = append(intervals, fmt.Sprintf("PR %s ms", f0(*rec.PRIntervalMs)))
	}
	if rec.QRSDurationMs != nil {
		intervals = append(intervals, fmt.Sprintf("QRS %s ms", f0(*rec.QRSDurationMs)))
	}
	if rec.QTIntervalMs != nil {
		intervals = append(intervals, qtLine(*rec.QTIntervalMs, m.QTcBazettMs, m.QTcFridericiaMs))
	}
	if len(intervals) > 0 {
		lines = append(lines, strings.Join(intervals, ", ")+".")
	}

	var axes []string
	if rec.PAxisDeg != nil {
		axes = append(axes, fmt.Sprintf("P-as %s°", f0(*rec.PAxisDeg)))
	}
	if rec.QRSAxisDeg != nil {
		axes = append(axes, fmt.Sprintf("QRS-as %s°", f0(*rec.QRSAxisDeg)))
	}
	if len(axes) > 0 {
		lines = append(lines, strings.Join(axes, ", ")+".")
	}

	if m.AxisDeviation != nil && !strings.Contains(lines[len(lines)-1], *m.AxisDeviation) {
		lines = append(lines, *m.AxisDeviation+".")
	}

	if rec.AutoReportText != nil && strings.TrimSpace(*rec.AutoReportText) != "" {
		lines = append(lines, "", "Automatische protocolering:", strings.TrimSpace(*rec.AutoReportText))
	}

	if m.TachyFlag {
		lines = append(lines, "Frequentie in tachycard bereik (>100 bpm).")
	}
	if m.BradyFlag {
		lines = append(lines, "Frequentie in bradycard bereik (<50 bpm).")
	}

	return strings.Join(lines, "\n")
}

// Brief returns the short ECG summary for the consult letter.
func (c *ECGComposer) Brief(rec *domain.ECGRecord, m domain.ECGMetrics) string {
	var parts []string
	if rec == nil {
		rec = &domain.ECGRecord{}
	}
	if s := strings.TrimSpace(str(rec.RhythmSummary)); s != "" {
		parts = append(parts, s)
	}
	if rec.VentRate != nil {
		parts = append(parts, fmt.Sprintf("HF %s bpm", f0(*rec.VentRate)))
	}
	if rec.QRSDurationMs != nil {
		parts = append(parts, fmt.Sprintf("QRS %s ms", f0(*rec.QRSDurationMs)))
	}
	if rec.PDurationMs != nil {
		parts = append(parts, fmt.Sprintf("P duur %s ms", f0(*rec.PDurationMs)))
	}
	switch {
	case m.QTcBazettMs != nil && m.QTcFridericiaMs != nil:
		parts = append(parts,
			fmt.Sprintf("QTcB %s ms", f0(*m.QTcBazettMs)),
			fmt.Sprintf("QTcF %s ms", f0(*m.QTcFridericiaMs)))
	case m.QTcFridericiaMs != nil:
		parts = append(parts, fmt.Sprintf("QTcF %s ms", f0(*m.QTcFridericiaMs)))
	case m.QTcBazettMs != nil:
		parts = append(parts, fmt.Sprintf("QTcB %s ms", f0(*m.QTcBazettMs)))
	case rec.QTIntervalMs != nil:
		parts = append(parts, fmt.Sprintf("QT %s ms", f0(*rec.QTIntervalMs)))
	}
	if m.AxisDeviation != nil {
		parts = append(parts, *m.AxisDeviation)
	}

	text := strings.Join(parts, "; ")
	prefix := ""
	if rec.RecordedAt != nil && *rec.RecordedAt != "" {
		prefix = fmt.Sprintf("ECG dd. %s: ", *rec.RecordedAt)
	} else if text != "" {
		prefix = "ECG: "
	}
	summary := strings.TrimSpace(prefix + text)
	if summary == "" {
		return "Geen ECG-gegevens beschikbaar."
	}
	return summary
}
