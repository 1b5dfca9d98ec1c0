package clinical

import (
	"fmt"
	"math"
	"strings"
)

// Diastolic function options as they appear in the echo report.
const (
	DiastolicNormal = "Normale diastolische functie met normale vullingsdrukken in het linker atrium"
	DiastolicGrade1 = "Diastolische dysfunctie graad 1 met normale vullingsdrukken in het linker atrium"
	DiastolicGrade2 = "Diastolische dysfunctie graad 2 met gestegen vullingsdrukken in het linker atrium"
	DiastolicGrade3 = "Diastolische dysfunctie graad 3 met ernstig gestegen vullingsdrukken in het linker atrium"
)

// DiastolicOptions lists the selectable diastolic function phrases in order.
func DiastolicOptions() []string {
	return []string{DiastolicNormal, DiastolicGrade1, DiastolicGrade2, DiastolicGrade3}
}

// SuggestDiastolicFunction derives the diastolic function phrase from E/A,
// E/e', LAVI and the raw PASP. E/A below 0.8 means grade 1, above 2 grade 3;
// in between, grade 2 requires at least two of E/e' >13, LAVI >34 and
// PASP >31. Without an E/A ratio the suggestion stays normal.
func SuggestDiastolicFunction(ea, ee, lavi, paspRaw *float64) string {
	if ea == nil {
		return DiastolicNormal
	}
	if *ea < 0.8 {
		return DiastolicGrade1
	}
	if *ea > 2 {
		return DiastolicGrade3
	}
	criteria := 0
	if ee != nil && *ee > 13 {
		criteria++
	}
	if lavi != nil && *lavi > 34 {
		criteria++
	}
	if paspRaw != nil && *paspRaw > 31 {
		criteria++
	}
	if criteria >= 2 {
		return DiastolicGrade2
	}
	return DiastolicNormal
}

// ParseCVD converts the central venous pressure selection ("3", "8", "15+")
// to its numeric value, 0.0 when not parseable.
func ParseCVD(cvd string) float64 {
	txt := strings.TrimSpace(cvd)
	txt = strings.TrimSuffix(txt, "+")
	var v float64
	if _, err := fmt.Sscanf(txt, "%f", &v); err != nil {
		return 0.0
	}
	return v
}

// CVDOptions lists the supported central venous pressure estimates in mmHg.
func CVDOptions() []string {
	return []string{"3", "8", "15+"}
}

// PASPText builds the pulmonary pressure sentence from the raw tricuspid
// regurgitation gradient and the CVD selection. Without an adequate TR signal
// the sentence says so.
func PASPText(paspRaw *float64, cvd string) string {
	if paspRaw == nil {
		return "Geen adequaat TR-signaal voor PASP"
	}
	total := int(math.Round(*paspRaw + ParseCVD(cvd)))
	if total > 35 {
		return fmt.Sprintf("Pulmonale hypertensie met PASP %d mmHg.", total)
	}
	return fmt.Sprintf("Normale pulmonale drukken met PASP %d mmHg.", total)
}
