package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/clinical"
	"github.com/cardiac-report-server/internal/domain"
)

// CIEDComposer renders the device follow-up report with its Meetwaarden and
// Conclusie sections.
type CIEDComposer struct {
	log *logrus.Logger
}

// NewCIEDComposer creates a device follow-up composer.
func NewCIEDComposer(logger *logrus.Logger) *CIEDComposer {
	return &CIEDComposer{log: logger}
}

// Enrich fills the rate-adaptive AV delay suggestions at peak upper tracking
// rate from the programmed delays. Values already set stay untouched.
func (c *CIEDComposer) Enrich(rec *domain.CIEDRecord) {
	if rec == nil || rec.LowerRate == nil || rec.UpperTracking == nil {
		return
	}
	reduction := clinical.AVDelayReduction(*rec.LowerRate, *rec.UpperTracking)
	if rec.SuggestedPacedAV == nil {
		if v := parsePct(rec.PacedAVDelay); v != nil {
			s := clinical.RateAdaptiveAVDelay(*v, reduction)
			rec.SuggestedPacedAV = &s
		}
	}
	if rec.SuggestedSensedAV == nil {
		if v := parsePct(rec.SensedAVDelay); v != nil {
			s := clinical.RateAdaptiveAVDelay(*v, reduction)
			rec.SuggestedSensedAV = &s
		}
	}
}

// Metrics derives the programming advice for the follow-up: the myPACE
// accelerated lower rate, the age-predicted upper tracking ceiling, the
// rate-adaptive AV delay shortening and the PVARP keeping the total atrial
// refractory period inside the upper tracking interval.
func (c *CIEDComposer) Metrics(rec *domain.CIEDRecord) domain.CIEDMetrics {
	var m domain.CIEDMetrics
	if rec == nil {
		return m
	}
	var length, age *float64
	if rec.Patient != nil {
		length = rec.Patient.Length
		age = rec.Patient.Age
	}

	if v := clinical.MyPACELowerRate(length, rec.LVEF); v != nil {
		m.MyPACELowerRate = v
		m.AdviceLines = append(m.AdviceLines,
			fmt.Sprintf("myPACE (if HFpEF) suggested lower rate: %d bpm", *v))
	}
	if age != nil {
		predicted := clinical.TanakaMaxHR(*age)
		tracking := clinical.SuggestedUpperTracking(*age)
		m.PredictedMaxHR = &predicted
		m.SuggestedTracking = &tracking
		m.AdviceLines = append(m.AdviceLines,
			fmt.Sprintf("Suggested upper tracking rate: %d bpm (≈85%% of predicted max HR %d bpm)", tracking, predicted))
	}
	if rec.LowerRate != nil && rec.UpperTracking != nil {
		m.AVDelayReduction = clinical.AVDelayReduction(*rec.LowerRate, *rec.UpperTracking)
		m.AdviceLines = append(m.AdviceLines,
			fmt.Sprintf("Optimal AV delay reduction: %d ms (≈5 ms per 10 bpm).", m.AVDelayReduction))
	}

	sensed := parsePct(rec.SensedAVDelay)
	if rec.UpperTracking != nil && sensed != nil {
		if v := clinical.OptimalPVARP(*rec.UpperTracking, *sensed); v != nil {
			m.OptimalPVARPMs = v
			m.AdviceLines = append(m.AdviceLines,
				fmt.Sprintf("Optimal PVARP: %d ms (60000 / UTR - sensed AV delay - 20 ms)", *v))
		}
	}
	if paced := parsePct(rec.PacedAVDelay); paced != nil {
		fromPaced := clinical.RecommendedSensedAV(*paced)
		if sensed == nil || *sensed != fromPaced {
			m.SensedFromPacedMs = &fromPaced
			m.AdviceLines = append(m.AdviceLines,
				fmt.Sprintf("Recommended sensed AV delay based on paced AV delay: %d ms (paced - 30).", fromPaced))
		}
	}
	return m
}

// Compose renders the CIED follow-up report.
func (c *CIEDComposer) Compose(rec *domain.CIEDRecord, m domain.CIEDMetrics) string {
	if rec == nil {
		rec = &domain.CIEDRecord{}
	}

	deviceType := strOr(rec.DeviceType, "apparaat")
	deviceBrand := str(rec.DeviceBrand)

	progStr := ""
	if rec.ProgrammingMode != nil && rec.LowerRate != nil && rec.UpperTracking != nil {
		progStr = fmt.Sprintf("%s-%d/%d", *rec.ProgrammingMode, *rec.LowerRate, *rec.UpperTracking)
	}

	first := fmt.Sprintf("Correcte werking van %s (%s)", deviceType, deviceBrand)
	if progStr != "" {
		first += " modus " + progStr
	}
	if indication := str(rec.IndicationText); indication != "" {
		first += fmt.Sprintf(" ter behandeling van %s.", indication)
	} else {
		first += "."
	}

	var meetLines []string
	if rec.LeadRA {
		if line, ok := leadLine("Atrium", rec.AtrialLead); ok {
			meetLines = append(meetLines, line)
		}
	}
	if rec.LeadRV {
		if line, ok := leadLine("Ventrikel", rec.VentLead); ok {
			meetLines = append(meetLines, line)
		}
	}
	if rec.LeadLV {
		if line, ok := leadLine("LV", rec.LVLead); ok {
			meetLines = append(meetLines, line)
		}
	}

	var pacing []string
	if v := parsePct(rec.AtrialPacingPct); v != nil {
		pacing = append(pacing, fmt.Sprintf("Atrium %d%%", *v))
	}
	if v := parsePct(rec.VentPacingPct); v != nil {
		pacing = append(pacing, fmt.Sprintf("Ventrikel %d%%", *v))
	}
	if v := parsePct(rec.LVPacingPct); v != nil {
		pacing = append(pacing, fmt.Sprintf("LV %d%%", *v))
	}
	if len(pacing) > 0 {
		meetLines = append(meetLines, "Pacing percentages: "+strings.Join(pacing, ", ")+".")
	}

	if v := parsePct(rec.SensedAVDelay); v != nil {
		if rec.SuggestedSensedAV != nil {
			meetLines = append(meetLines, fmt.Sprintf(
				"Sensed AV delay: %d ms (Rate-adaptive AV delay at peak UTR: %d ms).",
				*v, *rec.SuggestedSensedAV))
		} else {
			meetLines = append(meetLines, fmt.Sprintf("Sensed AV delay: %d ms.", *v))
		}
	}
	if v := parsePct(rec.PacedAVDelay); v != nil {
		if rec.SuggestedPacedAV != nil {
			meetLines = append(meetLines, fmt.Sprintf(
				"Paced AV delay: %d ms (Rate-adaptive AV delay at peak UTR: %d ms).",
				*v, *rec.SuggestedPacedAV))
		} else {
			meetLines = append(meetLines, fmt.Sprintf("Paced AV delay: %d ms.", *v))
		}
	}

	conclusion := []string{first}

	checks := make([]string, 0, 3)
	checks = append(checks, checkPart("sensing", rec.SensingOK))
	checks = append(checks, checkPart("pacing", rec.PacingOK))
	checks = append(checks, checkPart("impedantie", rec.ImpedanceOK))
	conclusion = append(conclusion, "Goede en stabiele waardes voor "+joinNL(checks)+".")

	if egm := str(rec.EGMEvents); egm != "" && egm != "Geen events" {
		conclusion = append(conclusion, fmt.Sprintf("De EGM uitlezing toont: %s.", egm))
	} else {
		conclusion = append(conclusion, "De EGM uitlezing toont geen events.")
	}

	if rec.SettingsChanged {
		conclusion = append(conclusion, "Instellingen gewijzigd tijdens follow-up.")
	} else {
		conclusion = append(conclusion, "Instellingen ongewijzigd.")
	}
	if rec.PatientDependent {
		conclusion = append(conclusion, "Patiënt is pacemakerafhankelijk.")
	} else {
		conclusion = append(conclusion, "Patiënt is niet afhankelijk.")
	}

	battery := "Batterijstatus niet gerapporteerd"
	if b := strings.TrimSpace(str(rec.BatteryStatus)); b != "" {
		battery = b
	}
	conclusion = append(conclusion, fmt.Sprintf("Batterij: %s.", battery))

	var out []string
	if len(meetLines) > 0 {
		out = append(out, "Meetwaarden:")
		out = append(out, meetLines...)
		out = append(out, "")
	}
	if len(m.AdviceLines) > 0 {
		out = append(out, "Programmeeradvies:")
		for _, line := range m.AdviceLines {
			out = append(out, "- "+line)
		}
		out = append(out, "")
	}
	out = append(out, "Conclusie:")
	out = append(out, conclusion...)

	return strings.Join(out, "\n")
}

// leadLine renders one per-lead measurement sentence. A lead with no
// recorded values at all is left out of the report.
func leadLine(name string, lead domain.LeadMeasurements) (string, bool) {
	if !haveValues(lead.Sensing, lead.ThresholdV, lead.ThresholdMs, lead.Impedance) {
		return "", false
	}
	stability := "stabiel"
	if !lead.IsStable() {
		stability = "onstabiel"
	}
	line := fmt.Sprintf("%s: sensing %s mV, drempel %s V @ %s ms (%s), impedantie %s Ω, %s.",
		name,
		strOr(lead.Sensing, "n.v.t."),
		strOr(lead.ThresholdV, "n.v.t."),
		strOr(lead.ThresholdMs, "n.v.t."),
		strOr(lead.Polarity, "n.v.t."),
		strOr(lead.Impedance, "n.v.t."),
		stability)
	if loc := strings.TrimSpace(str(lead.Location)); loc != "" {
		line += fmt.Sprintf(" Locatie: %s.", loc)
	}
	return line, true
}

func haveValues(fields ...*string) bool {
	for _, f := range fields {
		if f != nil && strings.TrimSpace(*f) != "" {
			return true
		}
	}
	return false
}

func checkPart(name string, ok bool) string {
	if ok {
		return name
	}
	return name + ": afwijkend"
}

// joinNL joins items the Dutch way: "a", "a en b", "a, b en c".
func joinNL(items []string) string {
	kept := items[:0]
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, item)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + " en " + kept[len(kept)-1]
	}
}

// parsePct reads a whole number out of a free-text field, tolerating a
// decimal tail from the programmer printout.
func parsePct(value *string) *int {
	if value == nil {
		return nil
	}
	txt := strings.TrimSpace(*value)
	if txt == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(txt, ",", "."), 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}

func strOr(p *string, fallback string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return fallback
	}
	return strings.TrimSpace(*p)
}
