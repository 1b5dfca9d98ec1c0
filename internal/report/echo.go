// Package report turns measurement records into the Dutch narrative reports
// and the consult letter. Composers are deterministic: the same record always
// yields the same text, and a record with no measurements yields the normal
// report rather than an error.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/clinical"
	"github.com/cardiac-report-server/internal/domain"
)

// EchoComposer derives the missing classification labels on an echo record
// and renders the full report and the brief summary.
type EchoComposer struct {
	log     *logrus.Logger
	mitral  *clinical.ValveGrader
	tricusp *clinical.ValveGrader
	pulmon  *clinical.ValveGrader
}

// NewEchoComposer creates an echo composer.
func NewEchoComposer(logger *logrus.Logger) *EchoComposer {
	return &EchoComposer{
		log:     logger,
		mitral:  clinical.NewMitralGrader(logger),
		tricusp: clinical.NewTricuspidGrader(logger),
		pulmon:  clinical.NewPulmonicGrader(logger),
	}
}

// Enrich fills the auto-classification fields of the record from its raw
// measurements: wall thickness and geometry labels, dilatation, systolic and
// diastolic function, right heart grading, PASP text and valve labels.
// Explicit clinician choices are never overwritten.
func (c *EchoComposer) Enrich(rec *domain.EchoRecord) {
	if rec == nil {
		return
	}
	sex := rec.Sex()
	bsa := rec.BSA()

	if rec.IVSd != nil {
		label := clinical.ClassifyIVSd(*rec.IVSd, sex)
		rec.LVHypertrophyAuto = &label
	}
	if rec.IVSd != nil && rec.LVIDd != nil && rec.LVPW != nil {
		mass := clinical.LVMass(*rec.IVSd, *rec.LVIDd, *rec.LVPW)
		rwt := clinical.RelativeWallThickness(*rec.LVPW, *rec.LVIDd)
		massIdx, severity := clinical.LVMassIndex(mass, bsa, sex)
		geometry := clinical.LVGeometry(severity, rwt)
		rec.MassIndex = &massIdx
		rec.RWT = &rwt
		rec.LVHypertrophyAuto = &geometry
	}
	if rec.LVIDd != nil {
		var bsaPtr *float64
		if bsa > 0 {
			bsaPtr = &bsa
		}
		label := clinical.ClassifyLVIDd(*rec.LVIDd, sex, bsaPtr)
		rec.LVDilatationAuto = &label
	}
	if rec.LVEF != nil && rec.SystolicOption == nil {
		phrase := clinical.SystolicPhrase(clinical.ClassifyLVEF(*rec.LVEF, sex))
		rec.SystolicOption = &phrase
	}
	if rec.DiastolicFunction == nil {
		suggestion := clinical.SuggestDiastolicFunction(
			rec.Measurement(domain.MeasEA),
			rec.Measurement(domain.MeasEePrime),
			rec.LAVI,
			rec.Measurement(domain.MeasPASPRaw),
		)
		rec.DiastolicFunction = &suggestion
	}
	if rec.LAVI == nil {
		if vol := rec.Measurement(domain.MeasLAVolume); vol != nil && bsa > 0 {
			lavi := domain.Round1(*vol / bsa)
			rec.LAVI = &lavi
		}
	}
	if rec.LAVI != nil && rec.LASuggested == nil {
		label := clinical.ClassifyLAVI(*rec.LAVI)
		rec.LASuggested = &label
	}

	if rec.RVFWd != nil && rec.RVHypertrophy == nil {
		label := clinical.RVHypertrophy(*rec.RVFWd)
		rec.RVHypertrophy = &label
	}
	if rec.RVDilatation == nil && (rec.RVBDd != nil || rec.RVMDd != nil) {
		label := clinical.RVDilatation(rec.RVBDd, rec.RVMDd)
		rec.RVDilatation = &label
	}
	if rec.TAPSE != nil && rec.RVFunction == nil {
		label := clinical.ClassifyTAPSE(*rec.TAPSE)
		rec.RVFunction = &label
	}
	if rec.RAVI != nil && rec.RADilatation == nil {
		label := clinical.ClassifyRAVI(*rec.RAVI, sex)
		rec.RADilatation = &label
	}
	if rec.PASPText == nil {
		cvd := ""
		if rec.CVD != nil {
			cvd = *rec.CVD
		}
		text := clinical.PASPText(rec.Measurement(domain.MeasPASPRaw), cvd)
		rec.PASPText = &text
	}

	if rec.AKStenosis == nil {
		label := clinical.AorticStenosisLabel(c.asMeasurements(rec))
		rec.AKStenosis = &label
	}
	if rec.MKRegurgitation == nil {
		m := domain.MeasMKEROA
		if rec.Measurement(m) != nil || rec.Measurement(domain.MeasMKRegVol) != nil || rec.Measurement(domain.MeasMKRF) != nil {
			_, label := c.mitral.Grade(clinical.RegurgMeasurements{
				EROA:   rec.Measurement(domain.MeasMKEROA),
				RegVol: rec.Measurement(domain.MeasMKRegVol),
				RF:     rec.Measurement(domain.MeasMKRF),
			})
			rec.MKRegurgitation = &label
		}
	}
	if rec.TKRegurgitation == nil {
		if rec.Measurement(domain.MeasTKEROA) != nil || rec.Measurement(domain.MeasTKRegVol) != nil ||
			rec.Measurement(domain.MeasTKRF) != nil || rec.Measurement(domain.MeasTKVCW) != nil {
			_, label := c.tricusp.Grade(clinical.RegurgMeasurements{
				EROA:   rec.Measurement(domain.MeasTKEROA),
				RegVol: rec.Measurement(domain.MeasTKRegVol),
				RF:     rec.Measurement(domain.MeasTKRF),
				VCW:    rec.Measurement(domain.MeasTKVCW),
			})
			rec.TKRegurgitation = &label
		}
	}
	if rec.PKRegurgitation == nil {
		if rec.Measurement(domain.MeasPKEROA) != nil || rec.Measurement(domain.MeasPKRegVol) != nil ||
			rec.Measurement(domain.MeasPKRF) != nil || rec.Measurement(domain.MeasPKDT) != nil ||
			rec.Measurement(domain.MeasPKPHT) != nil || rec.Measurement(domain.MeasPKPRIdx) != nil {
			_, label := c.pulmon.Grade(clinical.RegurgMeasurements{
				EROA:    rec.Measurement(domain.MeasPKEROA),
				RegVol:  rec.Measurement(domain.MeasPKRegVol),
				RF:      rec.Measurement(domain.MeasPKRF),
				DT:      rec.Measurement(domain.MeasPKDT),
				PHT:     rec.Measurement(domain.MeasPKPHT),
				PRIndex: rec.Measurement(domain.MeasPKPRIdx),
			})
			rec.PKRegurgitation = &label
		}
	}
}

func (c *EchoComposer) asMeasurements(rec *domain.EchoRecord) clinical.ASMeasurements {
	bsa := rec.BSA()
	m := clinical.ASMeasurements{
		Vmax:     rec.Measurement(domain.MeasAKVmax),
		MeanGrad: rec.Measurement(domain.MeasAKMean),
		AVA:      rec.Measurement(domain.MeasAVA),
	}
	if m.AVA != nil && bsa > 0 {
		idx := domain.Round2(*m.AVA / bsa)
		m.AVAIndex = &idx
	}
	if sv := rec.Measurement(domain.MeasSV); sv != nil && bsa > 0 {
		svi := domain.Round1(*sv / bsa)
		m.SVi = &svi
	}
	return m
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func roundInt(v float64) int { return int(math.Round(v)) }

// Compose renders the full narrative echo report. The line order is fixed:
// left heart, aorta, right heart, valves, pericardium, venous return.
func (c *EchoComposer) Compose(rec *domain.EchoRecord) string {
	if rec == nil {
		rec = &domain.EchoRecord{}
	}
	c.Enrich(rec)
	bsa := rec.BSA()

	var report []string
	var lvParts []string

	hypertrophy := str(rec.LVHypertrophyChoice)
	if hypertrophy == "" {
		hypertrophy = str(rec.LVHypertrophyAuto)
	}
	if hypertrophy == "" {
		hypertrophy = "Normotroof"
	}
	lvParts = append(lvParts, hypertrophy)

	var meas []string
	if rec.IVSd != nil {
		meas = append(meas, fmt.Sprintf("IVSd %v mm", *rec.IVSd))
	}
	if rec.LVPW != nil {
		meas = append(meas, fmt.Sprintf("LVPWd %v mm", *rec.LVPW))
	}
	if rec.MassIndex != nil {
		meas = append(meas, fmt.Sprintf("LVMI %v g/m²", *rec.MassIndex))
	}
	if rec.RWT != nil {
		meas = append(meas, fmt.Sprintf("RWT %v", *rec.RWT))
	}
	if len(meas) > 0 {
		lvParts = append(lvParts, "("+strings.Join(meas, ", ")+")")
	}

	dilLabel := str(rec.LVDilatationChoice)
	if dilLabel == "" {
		dilLabel = str(rec.LVDilatationAuto)
	}
	if dilLabel == "" {
		dilLabel = "niet gedilateerd"
	}
	if rec.LVIDd != nil {
		lvParts = append(lvParts, fmt.Sprintf("%s (LVIDd %v mm)", dilLabel, *rec.LVIDd))
	} else {
		lvParts = append(lvParts, dilLabel)
	}

	systTxt := str(rec.SystolicOption)
	if systTxt == "" {
		systTxt = "goede globale en regionale systolische functie"
	}
	if rec.LVEF != nil {
		systTxt += fmt.Sprintf(" (LVEF %v%%)", *rec.LVEF)
	}
	lvParts = append(lvParts, "met "+systTxt)
	report = append(report, "LV: "+strings.Join(lvParts, ", ")+".")

	diastolic := str(rec.DiastolicFunction)
	var extras []string
	if ea := rec.Measurement(domain.MeasEA); ea != nil {
		extras = append(extras, fmt.Sprintf("E/A %.1f", *ea))
	}
	if ee := rec.Measurement(domain.MeasEePrime); ee != nil {
		extras = append(extras, fmt.Sprintf("E/e' %.1f", *ee))
	}
	if len(extras) > 0 {
		diastolic = fmt.Sprintf("%s (%s)", diastolic, strings.Join(extras, ", "))
	}
	report = append(report, diastolic+".")

	laLabel := str(rec.LAChoice)
	if laLabel == "" {
		laLabel = str(rec.LASuggested)
	}
	if laLabel == "" {
		laLabel = "Niet gedilateerd"
	}
	if rec.LAVI != nil {
		report = append(report, fmt.Sprintf("LA: %s. (LAVI %v mL/m²).", laLabel, *rec.LAVI))
	} else {
		report = append(report, fmt.Sprintf("LA: %s.", laLabel))
	}

	report = append(report, c.aortaLines(rec, bsa)...)
	report = append(report, "")
	report = append(report, c.rightHeartLines(rec)...)
	report = append(report, "")
	report = append(report, c.valveLines(rec, bsa)...)

	report = append(report, "Pericardium is normaal zonder effusie.")
	report = append(report, "Endocardium geen tekens van infectie.")
	report = append(report, fmt.Sprintf("IVC is %s %s. CVD bedraagt %s mmHg.",
		str(rec.IVCDilatation), str(rec.IVCVariation), str(rec.CVD)))

	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"study": domain.StudyEcho,
			"lines": len(report),
		}).Debug("Echo report composed")
	}
	return strings.Join(report, "\n")
}

func (c *EchoComposer) aortaLines(rec *domain.EchoRecord, bsa float64) []string {
	type segment struct {
		seg      clinical.AortaSegment
		key      string
		abnormal string
	}
	segments := []segment{
		{clinical.AortaAnnulus, domain.MeasAoA, "Aorta annulus (AoA) is gedilateerd (%d mm, %.1f mm/m²)."},
		{clinical.AortaSinus, domain.MeasAoSV, "Aorta sinus valsalva (AoSV) is gedilateerd (%d mm, %.1f mm/m²)."},
		{clinical.AortaSTJ, domain.MeasAoSTJ, "Aorta sinotubulaire junctie (AoSTJ) is gedilateerd (%d mm, %.1f mm/m²)."},
		{clinical.AortaAscending, domain.MeasAscAo, "Aorta ascendens (AscAo) is gedilateerd (%d mm, %.1f mm/m²)."},
	}

	var items, abnormals []string
	for _, s := range segments {
		val := rec.Measurement(s.key)
		if val == nil {
			continue
		}
		if bsa > 0 {
			idx := domain.Round1(*val / bsa)
			items = append(items, fmt.Sprintf("%s %d mm, %.1f mm/m²", s.seg, roundInt(*val), idx))
			if clinical.AortaSegmentDilated(s.seg, idx) {
				abnormals = append(abnormals, fmt.Sprintf(s.abnormal, roundInt(*val), idx))
			}
		} else {
			items = append(items, fmt.Sprintf("%s %d mm", s.seg, roundInt(*val)))
		}
	}
	if len(items) == 0 {
		return nil
	}
	overall := "Aorta niet gedilateerd"
	if len(abnormals) > 0 {
		overall = "Aorta gedilateerd"
	}
	lines := []string{fmt.Sprintf("AO: %s (%s).", overall, strings.Join(items, ", "))}
	return append(lines, abnormals...)
}

func (c *EchoComposer) rightHeartLines(rec *domain.EchoRecord) []string {
	rvLabel := str(rec.RVHypertrophy)
	var details []string
	if rec.RVFWd != nil {
		details = append(details, fmt.Sprintf("RVFWd %dmm", roundInt(*rec.RVFWd)))
	}
	if rec.RVBDd != nil {
		details = append(details, fmt.Sprintf("RVBDd %dmm", roundInt(*rec.RVBDd)))
	}
	if rec.RVMDd != nil {
		details = append(details, fmt.Sprintf("RVMDd %dmm", roundInt(*rec.RVMDd)))
	}
	if len(details) > 0 {
		rvLabel = fmt.Sprintf("%s (%s)", rvLabel, strings.Join(details, "; "))
	}

	var lines []string
	if rec.TAPSE != nil {
		lines = append(lines, fmt.Sprintf("RV: %s, %s met %s (TAPSE %v mm). %s",
			rvLabel, str(rec.RVDilatation), str(rec.RVFunction), *rec.TAPSE, str(rec.PASPText)))
	} else {
		lines = append(lines, fmt.Sprintf("RV: %s, %s met %s. %s",
			rvLabel, str(rec.RVDilatation), str(rec.RVFunction), str(rec.PASPText)))
	}
	if rec.RAVI != nil {
		lines = append(lines, fmt.Sprintf("RA: %s. (RAVI %v mL/m²).", str(rec.RADilatation), *rec.RAVI))
	} else {
		lines = append(lines, fmt.Sprintf("RA: %s.", str(rec.RADilatation)))
	}
	return lines
}

func (c *EchoComposer) valveLines(rec *domain.EchoRecord, bsa float64) []string {
	var lines []string

	as := c.asMeasurements(rec)
	var akMeas []string
	if as.Vmax != nil {
		akMeas = append(akMeas, fmt.Sprintf("Vmax %.2f m/s", *as.Vmax))
	}
	if as.MeanGrad != nil {
		akMeas = append(akMeas, fmt.Sprintf("MeanG %d mmHg", roundInt(*as.MeanGrad)))
	}
	if as.AVA != nil {
		if as.AVAIndex != nil {
			akMeas = append(akMeas, fmt.Sprintf("AVA %.2f cm², %.2f cm²/m²", *as.AVA, *as.AVAIndex))
		} else {
			akMeas = append(akMeas, fmt.Sprintf("AVA %.2f cm²", *as.AVA))
		}
	}
	if sv := rec.Measurement(domain.MeasSV); sv != nil {
		if as.SVi != nil {
			akMeas = append(akMeas, fmt.Sprintf("SV %d mL, SVi %.1f mL/m²", roundInt(*sv), *as.SVi))
		} else {
			akMeas = append(akMeas, fmt.Sprintf("SV %d mL", roundInt(*sv)))
		}
	}
	lflgNote := ""
	if clinical.IsLowFlowLowGradient(as) {
		lflgNote = clinical.LowFlowLowGradientNote
	}
	akLine := fmt.Sprintf("AK: %s. %s. %s%s",
		str(rec.AKMorphology), str(rec.AKCalcification), str(rec.AKStenosis), lflgNote)
	if len(akMeas) > 0 {
		akLine += fmt.Sprintf(" (%s)", strings.Join(akMeas, ", "))
	}
	akLine += fmt.Sprintf(". %s.", str(rec.AKRegurgitation))
	lines = append(lines, akLine)

	var mkMeas []string
	if v := rec.Measurement(domain.MeasMKEROA); v != nil {
		mkMeas = append(mkMeas, fmt.Sprintf("EROA %.2f cm²", *v))
	}
	if v := rec.Measurement(domain.MeasMKRegVol); v != nil {
		mkMeas = append(mkMeas, fmt.Sprintf("RegVol %d mL", roundInt(*v)))
	}
	if v := rec.Measurement(domain.MeasMKRF); v != nil {
		mkMeas = append(mkMeas, fmt.Sprintf("RF %.0f%%", *v))
	}
	mkLine := fmt.Sprintf("MK: Normale morfologie. %s.", str(rec.MKRegurgitation))
	if len(mkMeas) > 0 {
		mkLine = strings.TrimSuffix(mkLine, ".") + fmt.Sprintf(" (%s).", strings.Join(mkMeas, ", "))
	}
	lines = append(lines, mkLine)

	var tkMeas []string
	if v := rec.Measurement(domain.MeasTKEROA); v != nil {
		tkMeas = append(tkMeas, fmt.Sprintf("EROA %.2f cm²", *v))
	}
	if v := rec.Measurement(domain.MeasTKRegVol); v != nil {
		tkMeas = append(tkMeas, fmt.Sprintf("RegVol %d mL", roundInt(*v)))
	}
	if v := rec.Measurement(domain.MeasTKRF); v != nil {
		tkMeas = append(tkMeas, fmt.Sprintf("RF %.0f%%", *v))
	}
	if v := rec.Measurement(domain.MeasTKVCW); v != nil {
		tkMeas = append(tkMeas, fmt.Sprintf("VCW %.2f cm", *v))
	}
	tkLine := fmt.Sprintf("TK: Normale morfologie. %s.", str(rec.TKRegurgitation))
	if len(tkMeas) > 0 {
		tkLine = strings.TrimSuffix(tkLine, ".") + fmt.Sprintf(" (%s).", strings.Join(tkMeas, ", "))
	}
	lines = append(lines, tkLine)

	var pkMeas []string
	if v := rec.Measurement(domain.MeasPKEROA); v != nil {
		pkMeas = append(pkMeas, fmt.Sprintf("EROA %.2f cm²", *v))
	}
	if v := rec.Measurement(domain.MeasPKRegVol); v != nil {
		pkMeas = append(pkMeas, fmt.Sprintf("RegVol %d mL", roundInt(*v)))
	}
	if v := rec.Measurement(domain.MeasPKRF); v != nil {
		pkMeas = append(pkMeas, fmt.Sprintf("RF %.0f%%", *v))
	}
	if v := rec.Measurement(domain.MeasPKDT); v != nil {
		pkMeas = append(pkMeas, fmt.Sprintf("DT %d ms", roundInt(*v)))
	}
	if v := rec.Measurement(domain.MeasPKPHT); v != nil {
		pkMeas = append(pkMeas, fmt.Sprintf("PHT %d ms", roundInt(*v)))
	}
	if v := rec.Measurement(domain.MeasPKPRIdx); v != nil {
		pkMeas = append(pkMeas, fmt.Sprintf("PR-index %.2f", *v))
	}
	if len(pkMeas) > 0 {
		lines = append(lines, fmt.Sprintf("PK: Normale morfologie. %s (%s).",
			str(rec.PKRegurgitation), strings.Join(pkMeas, ", ")))
	} else {
		lines = append(lines, fmt.Sprintf("PK: Normale morfologie. %s.", str(rec.PKRegurgitation)))
	}
	return lines
}

// Brief renders the compact echo summary for the consult letter.
func (c *EchoComposer) Brief(rec *domain.EchoRecord) string {
	if rec == nil {
		rec = &domain.EchoRecord{}
	}
	c.Enrich(rec)

	var parts []string
	var systolic []string
	if rec.SystolicOption != nil {
		systolic = append(systolic, *rec.SystolicOption)
	}
	if rec.LVEF != nil {
		systolic = append(systolic, fmt.Sprintf("LVEF %.0f%%", *rec.LVEF))
	}
	if len(systolic) > 0 {
		parts = append(parts, strings.Join(systolic, " "))
	}

	if rec.LVDilatationChoice != nil {
		parts = append(parts, fmt.Sprintf("LV: %s.", *rec.LVDilatationChoice))
	}
	if la := str(rec.LAChoice); la != "" {
		parts = append(parts, fmt.Sprintf("LA: %s.", la))
	} else if la := str(rec.LASuggested); la != "" {
		parts = append(parts, fmt.Sprintf("LA: %s.", la))
	}

	if rec.AKStenosis != nil {
		parts = append(parts, fmt.Sprintf("AK: %s.", *rec.AKStenosis))
	} else {
		parts = append(parts, fmt.Sprintf("AK: %s.", clinical.AorticStenosisLabel(c.asMeasurements(rec))))
	}
	if rec.MKRegurgitation != nil {
		parts = append(parts, fmt.Sprintf("MK: %s.", *rec.MKRegurgitation))
	}
	if rec.TKRegurgitation != nil {
		parts = append(parts, fmt.Sprintf("TK: %s.", *rec.TKRegurgitation))
	}
	if rec.PKRegurgitation != nil {
		parts = append(parts, fmt.Sprintf("PK: %s.", *rec.PKRegurgitation))
	}
	if rec.PASPText != nil {
		parts = append(parts, strings.TrimSpace(*rec.PASPText))
	}

	var cleaned []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	text := strings.TrimSpace(strings.Join(cleaned, " "))
	if text == "" {
		return "Geen echogegevens beschikbaar."
	}
	return text
}
