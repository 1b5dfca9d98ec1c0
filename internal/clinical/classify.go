package clinical

import (
	"fmt"
	"math"

	"github.com/cardiac-report-server/internal/domain"
)

// ClassifyIVSd grades septal wall thickness in mm against the sex-specific
// hypertrophy cutoffs.
func ClassifyIVSd(ivsdMm float64, sex domain.Sex) string {
	if sex == domain.Male {
		switch {
		case ivsdMm <= 10:
			return "Normotroof"
		case ivsdMm <= 13:
			return "Mild concentrisch hypertroof"
		case ivsdMm <= 16:
			return "Matig concentrisch hypertroof"
		default:
			return "Ernstig concentrisch hypertroof"
		}
	}
	switch {
	case ivsdMm <= 9:
		return "Normotroof"
	case ivsdMm <= 12:
		return "Mild concentrisch hypertroof"
	case ivsdMm <= 15:
		return "Matig concentrisch hypertroof"
	default:
		return "Ernstig concentrisch hypertroof"
	}
}

// ClassifyLAVI grades left atrial volume index in mL/m².
func ClassifyLAVI(lavi float64) string {
	switch {
	case lavi <= 34:
		return "Niet gedilateerd"
	case lavi <= 41:
		return "Mild gedilateerd"
	case lavi <= 48:
		return "Matig gedilateerd"
	default:
		return "Ernstig gedilateerd"
	}
}

// ClassifyLVEF grades ejection fraction with sex-specific normal bands.
// Returns one of "Normaal", "Mild", "Matig", "Ernstig".
func ClassifyLVEF(lvef float64, sex domain.Sex) string {
	if lvef < 30 {
		return "Ernstig"
	}
	if lvef >= 30 && lvef <= 40 {
		return "Matig"
	}
	if sex == domain.Male {
		if lvef >= 41 && lvef <= 51 {
			return "Mild"
		}
		if lvef >= 52 && lvef <= 72 {
			return "Normaal"
		}
	} else {
		if lvef >= 41 && lvef <= 53 {
			return "Mild"
		}
		if lvef >= 54 && lvef <= 74 {
			return "Normaal"
		}
	}
	if lvef < 41 {
		return "Matig"
	}
	return "Mild"
}

// SystolicPhrase maps an LVEF grade to the systolic function phrase used in
// the echo report.
func SystolicPhrase(lvefClass string) string {
	switch lvefClass {
	case "Mild":
		return "mild verminderde globale systolische functie"
	case "Matig":
		return "matig verminderde globale systolische functie"
	case "Ernstig":
		return "ernstig verminderde globale systolische functie"
	default:
		return "goede globale en regionale systolische functie"
	}
}

// LVMassIndex returns the indexed LV mass (g/m², rounded to one decimal) and
// its severity grade. A BSA below 0.1 m² is clamped so a missing BSA cannot
// blow up the index.
func LVMassIndex(massG, bsaM2 float64, sex domain.Sex) (float64, string) {
	massIndex := domain.Round1(massG / math.Max(0.1, bsaM2))
	if sex == domain.Male {
		switch {
		case massIndex < 115:
			return massIndex, "Normaal"
		case massIndex >= 116 && massIndex <= 131:
			return massIndex, "Mild"
		case massIndex >= 132 && massIndex <= 148:
			return massIndex, "Matig"
		default:
			return massIndex, "Ernstig"
		}
	}
	switch {
	case massIndex < 95:
		return massIndex, "Normaal"
	case massIndex >= 95 && massIndex <= 108:
		return massIndex, "Mild"
	case massIndex >= 109 && massIndex <= 121:
		return massIndex, "Matig"
	default:
		return massIndex, "Ernstig"
	}
}

// LVGeometry combines the mass-index grade and RWT into the geometry label.
func LVGeometry(severity string, rwt float64) string {
	if severity != "Normaal" {
		if rwt > 0.42 {
			return fmt.Sprintf("%s concentrisch hypertroof", severity)
		}
		if rwt < 0.32 {
			return fmt.Sprintf("%s eccentrisch hypertroof", severity)
		}
		return fmt.Sprintf("%s gemengd hypertroof", severity)
	}
	if rwt > 0.42 {
		return "Concentrische remodeling"
	}
	if rwt < 0.32 {
		return "Eccentrische remodeling"
	}
	return "Normotroof"
}

// ClassifyLVIDd grades the LV end-diastolic diameter. When a BSA is available
// the indexed thresholds (mm/m²) apply; otherwise it falls back to the older
// absolute-mm tables.
func ClassifyLVIDd(lviddMm float64, sex domain.Sex, bsaM2 *float64) string {
	if bsaM2 != nil && *bsaM2 > 0 {
		idx := domain.Round1(lviddMm / *bsaM2)
		if sex == domain.Male {
			switch {
			case idx < 31:
				return "niet gedilateerd"
			case idx >= 31 && idx <= 34:
				return "mild gedilateerd"
			case idx > 34 && idx <= 36:
				return "matig gedilateerd"
			default:
				return "ernstig gedilateerd"
			}
		}
		switch {
		case idx < 32:
			return "niet gedilateerd"
		case idx >= 32 && idx <= 35:
			return "mild gedilateerd"
		case idx > 35 && idx <= 37:
			return "matig gedilateerd"
		default:
			return "ernstig gedilateerd"
		}
	}
	if sex == domain.Male {
		switch {
		case lviddMm < 58:
			return "niet gedilateerd"
		case lviddMm >= 59 && lviddMm <= 63:
			return "mild gedilateerd"
		case lviddMm >= 64 && lviddMm <= 68:
			return "matig gedilateerd"
		default:
			return "ernstig gedilateerd"
		}
	}
	switch {
	case lviddMm < 52:
		return "niet gedilateerd"
	case lviddMm >= 53 && lviddMm <= 56:
		return "mild gedilateerd"
	case lviddMm >= 57 && lviddMm <= 61:
		return "matig gedilateerd"
	default:
		return "ernstig gedilateerd"
	}
}

// ClassifyLVIDs grades the LV end-systolic diameter from the absolute value
// in mm, the indexed value in mm/m², or both (worst wins).
func ClassifyLVIDs(lvidsMm, lvidsIdx *float64, sex domain.Sex) string {
	severity := 0
	if sex == domain.Male {
		if lvidsMm != nil {
			switch {
			case *lvidsMm > 45:
				severity = max(severity, 3)
			case *lvidsMm > 44 && *lvidsMm <= 45:
				severity = max(severity, 2)
			case *lvidsMm >= 41 && *lvidsMm <= 44:
				severity = max(severity, 1)
			}
		}
		if lvidsIdx != nil {
			switch {
			case *lvidsIdx > 25:
				severity = max(severity, 3)
			case *lvidsIdx >= 24 && *lvidsIdx <= 25:
				severity = max(severity, 2)
			case *lvidsIdx >= 22 && *lvidsIdx < 24:
				severity = max(severity, 1)
			}
		}
	} else {
		if lvidsMm != nil {
			switch {
			case *lvidsMm > 41:
				severity = max(severity, 3)
			case *lvidsMm > 39 && *lvidsMm <= 41:
				severity = max(severity, 2)
			case *lvidsMm >= 36 && *lvidsMm <= 39:
				severity = max(severity, 1)
			}
		}
		if lvidsIdx != nil {
			switch {
			case *lvidsIdx > 26:
				severity = max(severity, 3)
			case *lvidsIdx >= 24 && *lvidsIdx <= 26:
				severity = max(severity, 2)
			case *lvidsIdx >= 22 && *lvidsIdx < 24:
				severity = max(severity, 1)
			}
		}
	}
	switch severity {
	case 3:
		return "Ernstig vergroot"
	case 2:
		return "Matig vergroot"
	case 1:
		return "Mild vergroot"
	default:
		return "Normaal"
	}
}

// ClassifyTAPSE grades right ventricular longitudinal function from TAPSE in mm.
func ClassifyTAPSE(tapseMm float64) string {
	switch {
	case tapseMm > 17:
		return "goede longitudinale systolische functie"
	case tapseMm >= 13 && tapseMm <= 17:
		return "mild verminderde longitudinale systolische functie"
	case tapseMm >= 11 && tapseMm < 13:
		return "matig verminderde longitudinale systolische functie"
	default:
		return "ernstig verminderde longitudinale systolische functie"
	}
}

// ClassifyRAVI grades right atrial volume index with sex-specific cutoffs.
func ClassifyRAVI(ravi float64, sex domain.Sex) string {
	limit := 28.0
	if sex == domain.Male {
		limit = 32.0
	}
	if ravi > limit {
		return "Gedilateerd"
	}
	return "Niet gedilateerd"
}

// RVHypertrophy grades right ventricular free wall thickness in mm.
func RVHypertrophy(rvfwdMm float64) string {
	if rvfwdMm > 5 {
		return "Hypertroof"
	}
	return "Normotroof"
}

// RVDilatation grades right ventricular size from the basal and mid
// diameters in mm.
func RVDilatation(rvbddMm, rvmddMm *float64) string {
	if (rvbddMm != nil && *rvbddMm > 41) || (rvmddMm != nil && *rvmddMm > 35) {
		return "gedilateerd"
	}
	return "niet gedilateerd"
}
