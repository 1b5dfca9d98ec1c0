// Package ingest parses the text extracted from scanned study reports into
// structured measurement records. The parsers are tolerant: every field is
// best-effort, and whatever could not be read is reported as a warning
// rather than an error.
package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardiac-report-server/internal/domain"
)

var (
	numericRe = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)
	dateRe    = regexp.MustCompile(`\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}[./-]\d{2}[./-]\d{2}`)
	spacesRe  = regexp.MustCompile(`[ \t]+`)

	nameRe      = labelRe("naam")
	patientIDRe = regexp.MustCompile(`(?i)(?:pati[éeë]?nt[-\s]*(?:id|nr)|patient\s*id|mrn)(?:[:=\-]\s*|\s+)([^\n]+)`)
	orderIDRe   = regexp.MustCompile(`(?i)(?:order[-\s]*id|bezoek[-\s]*id)(?:[:=\-]\s*|\s+)([^\n]+)`)
	dobRe       = regexp.MustCompile(`(?i)(?:geboorte(?:datum|dat)|dob|date\s*of\s*birth)(?:[:=\-]\s*|[.\s]+)([^\n]+)`)
	ageRe       = labelRe("leeftijd")
	bsaRe       = labelRe(`bsa`)
	weightRe    = labelRe(`(?:gewicht|weight)`)
	lengthRe    = labelRe(`(?:lengte|length|height)`)
	sexRe       = labelRe(`(?:geslacht|sex|gender)`)
)

// ocrDigitFixups repairs the digit lookalikes OCR tends to produce.
var ocrDigitFixups = strings.NewReplacer(
	"O", "0", "o", "0", "D", "0",
	"I", "1", "l", "1", "|", "1",
	"S", "5", "s", "5",
	"B", "8", "T", "7",
)

func labelRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `(?:[:=\-]\s*|[.\s]+)([^\n]+)`)
}

// ExtractPatient returns best-effort patient details parsed from report text.
// Sex defaults to Man when the document does not state one.
func ExtractPatient(rawText string) domain.PatientContext {
	text := normalizeWhitespace(rawText)

	p := domain.PatientContext{Sex: normalizeSex(match(sexRe, text))}
	if id := firstToken(match(patientIDRe, text)); id != "" {
		p.PatientID = domain.StringPtr(id)
	} else if id := firstToken(match(orderIDRe, text)); id != "" {
		p.PatientID = domain.StringPtr(id)
	}
	if name := cleanName(match(nameRe, text)); name != "" {
		p.FullName = domain.StringPtr(name)
	}
	if dob := extractDate(match(dobRe, text)); dob != "" {
		p.DateOfBirth = domain.StringPtr(dob)
	}
	p.Age = extractNumeric(match(ageRe, text))
	p.BSA = extractNumeric(match(bsaRe, text))
	p.Weight = extractNumeric(match(weightRe, text))
	p.Length = normalizeLength(match(lengthRe, text))
	return p
}

func normalizeWhitespace(text string) string {
	return spacesRe.ReplaceAllString(text, " ")
}

func match(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func extractNumeric(raw string) *float64 {
	if raw == "" {
		return nil
	}
	cleaned := ocrDigitFixups.Replace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	token := numericRe.FindString(cleaned)
	if token == "" {
		return nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeLength converts a length given in meters to centimeters.
func normalizeLength(raw string) *float64 {
	v := extractNumeric(raw)
	if v == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(raw), "m") && *v < 3 {
		cm := *v * 100
		return &cm
	}
	return v
}

func extractDate(raw string) string {
	if raw == "" {
		return ""
	}
	return dateRe.FindString(raw)
}

func normalizeSex(raw string) domain.Sex {
	token := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case token == "":
		return domain.Male
	case strings.HasPrefix(token, "v"), strings.HasPrefix(token, "f"):
		return domain.Female
	default:
		return domain.Male
	}
}

// cleanName keeps the leading alphabetic tokens of a name line, dropping
// whatever trailing IDs or dates the layout glued onto it.
func cleanName(raw string) string {
	if raw == "" {
		return ""
	}
	var tokens []string
	for _, token := range strings.Fields(raw) {
		if strings.ContainsAny(token, "0123456789") {
			break
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return strings.TrimSpace(raw)
	}
	return strings.Join(tokens, " ")
}

func firstToken(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
