package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cardiac-report-server/internal/domain"
)

var (
	ecgDateRe      = regexp.MustCompile(`(?i)datum[:\-]\s*(\d{1,2}[-/ ]\d{1,2}[-/ ]\d{2,4})`)
	ecgTimestampRe = regexp.MustCompile(`\d{2}[./-]\d{2}[./-]\d{4}\s+\d{2}:\d{2}:\d{2}`)
	ecgRhythmRe    = regexp.MustCompile(`(?i)ritme[:\-]\s*(.+?)\s{2,}`)
	ecgSinusRe     = regexp.MustCompile(`(?i)(sinusritme[^\n]*)`)
	ecgDeviceRe    = regexp.MustCompile(`(?i)toestel[:\-]\s*(.+?)\s{2,}`)

	ecgVentRatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)vent(?:riculaire)?\s+frequentie\s*(?:[:=\-]|is)?\s*(\S+)`),
		regexp.MustCompile(`(?i)\bhf\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgPRPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpr(?:\s*interval)?\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgQRSPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bqrs(?:\s*duur)?\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgQTPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bqt\b\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgQTcPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bqtc[a-z]*\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgPAxisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bp[-\s]?(?:axis|as)\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgQRSAxisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bqrs[-\s]?(?:axis|as)\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgTAxisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bt[-\s]?(?:axis|as)\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
	ecgPDurationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bp\s*-?\s*duur\s*(?:[:=\-]|is)?\s*(\S+)`),
		regexp.MustCompile(`(?i)\bp-?wave(?:\s*duration)?\s*(?:[:=\-]|is)?\s*(\S+)`),
	}
)

// ParseECGText parses the extracted text of an ECG report.
func ParseECGText(text string) (domain.PatientContext, *domain.ECGRecord, []string) {
	var warnings []string

	patient := ExtractPatient(text)

	rec := &domain.ECGRecord{Patient: &patient}

	if recordedAt := match(ecgDateRe, text); recordedAt != "" {
		rec.RecordedAt = domain.StringPtr(recordedAt)
	} else if ts := ecgTimestampRe.FindString(text); ts != "" {
		rec.RecordedAt = domain.StringPtr(ts)
	}

	if rhythm := match(ecgRhythmRe, text); rhythm != "" {
		rec.RhythmSummary = domain.StringPtr(rhythm)
	} else if rhythm := match(ecgSinusRe, text); rhythm != "" {
		rec.RhythmSummary = domain.StringPtr(rhythm)
	}

	if auto := lineAfterLabel(text, "Opmerking"); auto == "" {
		if auto = lineAfterLabel(text, "Conclusie"); auto == "" {
			auto = lineAfterLabel(text, "Protocol")
		}
		if auto != "" {
			rec.AutoReportText = domain.StringPtr(auto)
		}
	} else {
		rec.AutoReportText = domain.StringPtr(auto)
	}

	if device := match(ecgDeviceRe, text); device == "" {
		device = lineAfterLabel(text, "Apparaat-ID")
		if device != "" {
			rec.AcquisitionDevice = domain.StringPtr(firstToken(device))
		}
	} else {
		rec.AcquisitionDevice = domain.StringPtr(firstToken(device))
	}

	rec.VentRate = numFromPatterns(ecgVentRatePatterns, text)
	rec.PRIntervalMs = numFromPatterns(ecgPRPatterns, text)
	rec.QRSDurationMs = numFromPatterns(ecgQRSPatterns, text)
	rec.QTIntervalMs = numFromPatterns(ecgQTPatterns, text)
	rec.QTcIntervalMs = numFromPatterns(ecgQTcPatterns, text)
	rec.PAxisDeg = numFromPatterns(ecgPAxisPatterns, text)
	rec.QRSAxisDeg = numFromPatterns(ecgQRSAxisPatterns, text)
	rec.TAxisDeg = numFromPatterns(ecgTAxisPatterns, text)
	rec.PDurationMs = numFromPatterns(ecgPDurationPatterns, text)

	var missing []string
	if rec.PRIntervalMs == nil {
		missing = append(missing, "PR")
	}
	if rec.QRSDurationMs == nil {
		missing = append(missing, "QRS")
	}
	if rec.QTIntervalMs == nil {
		missing = append(missing, "QT")
	}
	if len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf("Kon niet alle intervalwaarden uitlezen: %s", strings.Join(missing, ", ")))
	}

	return patient, rec, warnings
}

func numFromPatterns(patterns []*regexp.Regexp, text string) *float64 {
	for _, re := range patterns {
		if raw := match(re, text); raw != "" {
			if v := extractNumeric(raw); v != nil {
				return v
			}
		}
	}
	return nil
}

// lineAfterLabel returns the remainder of a labelled line, or the next
// non-empty line when the label stands alone.
func lineAfterLabel(text, label string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*[:\-]?\s*([^\n]+)`)
	if m := match(re, text); m != "" {
		return m
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), strings.ToLower(label)) && i+1 < len(lines) {
			if next := strings.TrimSpace(lines[i+1]); next != "" {
				return next
			}
		}
	}
	return ""
}
