package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardiac-report-server/internal/domain"
)

var (
	timeTokenRe = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)

	cycloStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)start(?:\s*belasting)?(?:\s*watt)?(?:\s*\(w(?:att)?\))?\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)start\s*load\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
	}
	cycloIncrementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)opdrij(?:ving|fing|ven)\s*(?:\([^)]*\))?\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)stapgrootte\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
	}
	cycloMaxWattPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)max(?:imale)?\s*(?:belasting|vermogen|watt)\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)piek\s*watt\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)max[.\s]*belasting[^0-9]*([0-9][0-9.,]*)\s*w`),
	}
	cycloDurationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)duur(?:\s*(?:bij|op))?\s*(?:max(?:imale)?\s*)?(?:belasting|vermogen)?\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)tijd\s*aan\s*top\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)inspanning\s*([0-9]{1,2}[:.][0-9]{2})`),
	}
	cycloMaxHRPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)max(?:imale)?\s*(?:hartslag|hr|hartfrequentie)\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)piek\s*hr\s*(?:[:=\-]\s*)?([0-9][0-9.,]*)`),
		regexp.MustCompile(`(?i)max[.\s]*hf[^0-9]*([0-9][0-9.,]*)`),
	}

	cycloBPRe         = regexp.MustCompile(`(?i)bloeddruk(?:evolutie)?[:\-]\s*([^\n]+)`)
	cycloRhythmRe     = regexp.MustCompile(`(?i)ritme[:\-]\s*([^\n]+)`)
	cycloEffortRe     = regexp.MustCompile(`(?i)inspanning[:\-]\s*([^\n]+)`)
	cycloStopRe       = regexp.MustCompile(`(?i)criterium[:\-]\s*([^\n]+)`)
	cycloECGRe        = regexp.MustCompile(`(?i)ecg(?:\s+verloop)?[:\-]\s*([^\n]+)`)
	cycloConclusionRe = regexp.MustCompile(`(?i)conclusie[:\-]\s*([^\n]+)`)
)

// workload is one line of the ergometer workload table.
type workload struct {
	label string // "opwarmen" or "werken"
	watt  float64
}

// ParseCycloText parses the extracted text of a fietsproef report. Values
// the explicit labels miss are recovered from the workload table when one
// is present.
func ParseCycloText(text string) (domain.PatientContext, *domain.CycloRecord, []string) {
	var warnings []string

	patient := ExtractPatient(text)
	rec := &domain.CycloRecord{Patient: &patient}

	workloads := extractWorkloads(text)

	rec.StartWatt = numFromPatterns(cycloStartPatterns, text)
	if rec.StartWatt == nil {
		rec.StartWatt = firstWatt(workloads, "opwarmen")
		if rec.StartWatt == nil {
			rec.StartWatt = firstWatt(workloads, "werken")
		}
	}
	if rec.StartWatt == nil {
		warnings = append(warnings, "Start watt niet gevonden in PDF")
	}

	rec.IncrementWatt = numFromPatterns(cycloIncrementPatterns, text)
	if rec.IncrementWatt == nil {
		rec.IncrementWatt = estimateIncrement(workloads)
	}
	if rec.IncrementWatt == nil {
		warnings = append(warnings, "Opdrijven niet gevonden in PDF")
	}

	rec.MaxWatt = numFromPatterns(cycloMaxWattPatterns, text)
	if rec.MaxWatt == nil {
		warnings = append(warnings, "Max watt niet gevonden in PDF")
		if len(workloads) > 0 {
			peak := workloads[0].watt
			for _, w := range workloads[1:] {
				if w.watt > peak {
					peak = w.watt
				}
			}
			rec.MaxWatt = &peak
		}
	}

	rec.DurationAtMax = secondsFromPatterns(cycloDurationPatterns, text)
	if rec.DurationAtMax == nil {
		warnings = append(warnings, "Duur niet gevonden in PDF")
	}
	rec.MaxHR = numFromPatterns(cycloMaxHRPatterns, text)
	if rec.MaxHR == nil {
		warnings = append(warnings, "Max HR niet gevonden in PDF")
	}

	if v := match(cycloBPRe, text); v != "" {
		rec.BPEvolution = domain.StringPtr(v)
	}
	if v := match(cycloRhythmRe, text); v != "" {
		rec.Rhythm = domain.StringPtr(v)
	}
	if v := match(cycloEffortRe, text); v != "" {
		rec.EffortType = domain.StringPtr(v)
	}
	if v := match(cycloStopRe, text); v != "" {
		rec.StopCriterium = domain.StringPtr(v)
	}
	if v := match(cycloECGRe, text); v != "" {
		rec.ECGChanges = domain.StringPtr(v)
	}
	if v := match(cycloConclusionRe, text); v != "" {
		rec.Conclusion = domain.StringPtr(v)
	}

	return patient, rec, warnings
}

// secondsFromPatterns parses a duration that may be "mm:ss" or plain seconds.
func secondsFromPatterns(patterns []*regexp.Regexp, text string) *float64 {
	for _, re := range patterns {
		raw := match(re, text)
		if raw == "" {
			continue
		}
		if m := timeTokenRe.FindStringSubmatch(raw); m != nil {
			minutes, _ := strconv.Atoi(m[1])
			seconds, _ := strconv.Atoi(m[2])
			v := float64(minutes*60 + seconds)
			return &v
		}
		if v := extractNumeric(raw); v != nil {
			return v
		}
	}
	return nil
}

// extractWorkloads reads the per-stage workload table. Each stage line
// starts with its phase name followed by a duration and the wattage.
func extractWorkloads(text string) []workload {
	var series []workload
	seen := make(map[workload]bool)
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		var label string
		switch {
		case strings.HasPrefix(lower, "opwarmen"):
			label = "opwarmen"
		case strings.HasPrefix(lower, "werken"):
			label = "werken"
		default:
			continue
		}
		watt := lineWattValue(line)
		if watt == nil {
			continue
		}
		w := workload{label: label, watt: *watt}
		if seen[w] {
			continue
		}
		seen[w] = true
		series = append(series, w)
	}
	return series
}

// lineWattValue returns the first number after the duration token of a
// workload line.
func lineWattValue(line string) *float64 {
	sanitized := strings.ReplaceAll(line, "-", " ")
	seenTime := false
	for _, token := range strings.Fields(sanitized) {
		stripped := strings.Trim(token, "()")
		if timeTokenRe.MatchString(stripped) && timeTokenRe.FindString(stripped) == stripped {
			seenTime = true
			continue
		}
		if !seenTime {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == ',' {
				return r
			}
			return -1
		}, stripped)
		if v := extractNumeric(cleaned); v != nil {
			return v
		}
		break
	}
	return nil
}

func firstWatt(workloads []workload, prefer string) *float64 {
	for _, w := range workloads {
		if w.label == prefer {
			v := w.watt
			return &v
		}
	}
	return nil
}

// estimateIncrement derives the ramp step from consecutive work stages.
func estimateIncrement(workloads []workload) *float64 {
	var work []float64
	for _, w := range workloads {
		if w.label == "werken" {
			work = append(work, w.watt)
		}
	}
	if len(work) < 2 {
		return nil
	}
	for i := 0; i < len(work)-1; i++ {
		if diff := work[i+1] - work[i]; diff > 0 {
			return &diff
		}
	}
	return nil
}
