package report

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/clinical"
	"github.com/cardiac-report-server/internal/domain"
)

// RecommendationEngine derives guideline-driven management recommendations
// from an echo record: severe mitral regurgitation, severe aortic stenosis
// and proximal aorta dilation each unlock their ladder of class I/IIa/IIb
// statements (ESC valvular heart disease and aortic disease guidelines).
type RecommendationEngine struct {
	log *logrus.Logger
}

// NewRecommendationEngine creates a recommendation engine.
func NewRecommendationEngine(logger *logrus.Logger) *RecommendationEngine {
	return &RecommendationEngine{log: logger}
}

// Recommendations returns the ordered recommendation list for the record:
// mitral first, then aortic stenosis, then the aorta surveillance ladder.
func (e *RecommendationEngine) Recommendations(rec *domain.EchoRecord) []string {
	if rec == nil {
		return nil
	}
	bsa := rec.BSA()
	sex := rec.Sex()

	var recs []string

	lvefVal := rec.LVEF
	lvids := rec.Measurement(domain.MeasLVIDs)
	var lvesdi *float64
	if lvids != nil && bsa > 0 {
		v := domain.Round1(*lvids / bsa)
		lvesdi = &v
	}
	var lavi *float64
	if laVol := rec.Measurement(domain.MeasLAVolume); laVol != nil && bsa > 0 {
		v := domain.Round1(*laVol / bsa)
		lavi = &v
	}
	pasp := rec.Measurement(domain.MeasPASPRaw)

	akVmax := rec.Measurement(domain.MeasAKVmax)
	akMean := rec.Measurement(domain.MeasAKMean)
	akAVA := rec.Measurement(domain.MeasAVA)
	var akAVAIdx *float64
	if akAVA != nil && bsa > 0 {
		v := domain.Round2(*akAVA / bsa)
		akAVAIdx = &v
	}
	var svi *float64
	if sv := rec.Measurement(domain.MeasSV); sv != nil && bsa > 0 {
		v := domain.Round1(*sv / bsa)
		svi = &v
	}
	as := clinical.ASMeasurements{Vmax: akVmax, MeanGrad: akMean, AVA: akAVA, AVAIndex: akAVAIdx, SVi: svi}

	mkSev := clinical.MitralRegurgSeverity(
		rec.Measurement(domain.MeasMKEROA),
		rec.Measurement(domain.MeasMKRegVol),
		rec.Measurement(domain.MeasMKRF),
	)
	severeMR := strings.Contains(str(rec.MKRegurgitation), "Ernstige mitralis regurgitatie") ||
		mkSev == domain.SeveritySevere
	severeAS := strings.Contains(str(rec.AKStenosis), "Ernstige stenose") || clinical.IsSevereAS(as)

	if severeMR {
		recs = append(recs, "Ernstige primaire mitralisregurgitatie vastgesteld.")
		if rec.Flag(domain.FlagMRSymptomatic) {
			recs = append(recs, "Mitralisklepchirurgie is aangewezen bij ernstige primaire MR met symptomen (I-B).")
		}
		if lvefVal != nil && *lvefVal <= 60 {
			recs = append(recs, "Chirurgie aangewezen: LVEF ≤60% (I-B).")
		}
		if lvids != nil && *lvids > 40 {
			recs = append(recs, "Chirurgie aangewezen: LVESD >40 mm (I-B).")
		}
		if lvesdi != nil && *lvesdi >= 20 {
			recs = append(recs, "Chirurgie aangewezen: LVESDi ≥20 mm/m² (I-B).")
		}
		if pasp != nil && *pasp > 50 {
			recs = append(recs, "Pulmonale hypertensie met sPAP >50 mmHg (IIa-B).")
		}
		if lavi != nil && *lavi > 60 {
			recs = append(recs, "LA dilatatie (LAVI >60 mL/m²) (IIa-B).")
		}
		if rec.Flag(domain.FlagAFPresent) {
			recs = append(recs, "Voorkamerfibrillatie bij ernstige MR (IIa-B).")
		}
		recs = append(recs, "Chirurgisch klepherstel heeft de voorkeur (I-B).")
		recs = append(recs, "Minimaal invasieve klepchirurgie kan overwogen worden (IIb).")
		if rec.Flag(domain.FlagMRSymptomatic) {
			recs = append(recs, "TEER kan worden overwogen bij symptomatische ernstige MR met hoog chirurgisch risico en geschikte anatomie.")
		}
	}

	if severeAS {
		recs = append(recs, "Ernstige aortaklepstenose vastgesteld.")
		if rec.Flag(domain.FlagASSymptomatic) {
			recs = append(recs, "Interventie aangewezen bij symptomatische ernstige AS (I-B).")
		}
		if clinical.IsLowFlowLowGradient(as) {
			recs = append(recs, "Low-flow low-gradient patroon met ernstig stenoseprofiel.")
		}
		if lvefVal != nil {
			if *lvefVal < 50 {
				recs = append(recs, "Interventie aangewezen bij LVEF <50% zonder andere oorzaak (I-B).")
			} else if *lvefVal < 55 {
				recs = append(recs, "Interventie te overwegen bij LVEF <55% zonder andere oorzaak (IIa).")
			}
		}
		if rec.Flag(domain.FlagASSBPDrop) {
			recs = append(recs, "Bloeddrukdaling >20 mmHg bij inspanning (IIa).")
		}
		if akMean != nil && *akMean > 60 {
			recs = append(recs, "Zeer ernstige AS: mean gradiënt >60 mmHg (IIa).")
		}
		if akVmax != nil && *akVmax > 5.0 {
			recs = append(recs, "Zeer ernstige AS: Vmax >5.0 m/s (IIa).")
		}
		if calc := rec.Measurement(domain.MeasASCalcScore); calc != nil && *calc > 0 {
			if (sex == domain.Male && *calc > 2000) || (sex != domain.Male && *calc > 1200) {
				recs = append(recs, "Ernstige calcificatie ondersteunt interventie (IIa).")
			}
		}
		if prog := rec.Measurement(domain.MeasASVmaxProg); prog != nil && *prog > 0.3 {
			recs = append(recs, "Vmax-progressie >0.3 m/s/jaar (IIa).")
		}
		if bnp := rec.Measurement(domain.MeasASBNP); bnp != nil && *bnp > 0 {
			recs = append(recs, "Verhoogde BNP/NT-proBNP ondersteunt interventie (IIa).")
		}
		if rec.Patient != nil && rec.Patient.Age != nil {
			if int(*rec.Patient.Age) >= 70 {
				recs = append(recs, "TAVI aanbevolen bij geschikte anatomie (I-A).")
			} else {
				recs = append(recs, "SAVR aanbevolen bij leeftijd <70 jaar en laag operatierisico (I-B). TAVI kan worden overwogen afhankelijk van anatomie/risico (IIa/IIb).")
			}
		}
	}

	recs = append(recs, e.aortaRecommendations(rec, bsa, sex, severeAS)...)

	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"severe_mr": severeMR,
			"severe_as": severeAS,
			"count":     len(recs),
		}).Debug("Guideline recommendations generated")
	}
	return recs
}

func (e *RecommendationEngine) aortaRecommendations(rec *domain.EchoRecord, bsa float64, sex domain.Sex, severeAS bool) []string {
	var aoVals, aoIdxVals []float64
	for _, key := range []string{domain.MeasAoA, domain.MeasAoSV, domain.MeasAoSTJ, domain.MeasAscAo} {
		val := rec.Measurement(key)
		if val == nil {
			continue
		}
		aoVals = append(aoVals, *val)
		if bsa > 0 {
			aoIdxVals = append(aoIdxVals, domain.Round1(*val/bsa))
		}
	}
	if len(aoVals) == 0 {
		return nil
	}
	maxAo := aoVals[0]
	for _, v := range aoVals[1:] {
		if v > maxAo {
			maxAo = v
		}
	}
	var maxAoIdx *float64
	for i, v := range aoIdxVals {
		if i == 0 || v > *maxAoIdx {
			maxAoIdx = &aoIdxVals[i]
		}
	}
	bicuspid := strings.Contains(strings.ToLower(str(rec.AKMorphology)), "bicus")
	severeASLabel := strings.Contains(str(rec.AKStenosis), "Ernstige stenose")

	var recs []string
	if maxAo >= 55 {
		recs = append(recs, "Aorta ascendens ≥55 mm: chirurgie aanbevolen (I-B).")
	} else if maxAo >= 50 {
		if bicuspid || sex == domain.Male {
			recs = append(recs, "Aorta ascendens ≥50 mm: overweeg chirurgie (IIa), zeker bij bicuspide anatomie of man.")
		} else {
			recs = append(recs, "Aorta ascendens ≥50 mm: overweeg chirurgie (IIa).")
		}
	}
	if maxAo >= 45 && (severeASLabel || severeAS) {
		recs = append(recs, "Bij indicatie voor klepchirurgie en AscAo ≥45 mm: gelijktijdige aortachirurgie overwegen (IIa).")
	}
	switch {
	case maxAo >= 45 && maxAo < 50:
		recs = append(recs, "AscAo 45-49 mm: controle CT/MRI/echo om de 6-12 maanden.")
	case maxAo >= 40 && maxAo < 45:
		recs = append(recs, "AscAo 40-44 mm: controle beeldvorming jaarlijks.")
	case maxAoIdx != nil && *maxAoIdx > 17 && maxAo < 40:
		recs = append(recs, "AscAo index >17 mm/m²: overweeg jaarlijkse opvolging ondanks absolute <40 mm.")
	case maxAo >= 37:
		recs = append(recs, "AscAo 37-39 mm: herbeoordeling binnen 2-3 jaar indien stabiel.")
	}
	if maxAo >= 30 && maxAo < 40 {
		recs = append(recs, "Aorta 30-40 mm: TTE elke 3 jaar.")
	}
	if maxAo >= 40 && maxAo <= 44 {
		recs = append(recs, "Aorta 40-44 mm: baseline CT/MR aorta + TTE controle in 1 jaar; bij groei >3 mm/jaar bevestigen met CT/MR en daarna elke 6 maanden TTE; bij groei <3 mm/jaar TTE elke 2 jaar.")
	}
	if maxAo >= 45 && maxAo <= 49 {
		recs = append(recs, "Aorta 45-49 mm: baseline CT/MR aorta en TTE elke 6 maanden.")
	}
	if maxAo >= 50 && maxAo <= 52 {
		recs = append(recs, "Aorta 50-52 mm: baseline CT/MR aorta; bij hoog-risico kenmerken (familiale aorta-event, ongecontroleerde hypertensie, leeftijd <50 j) kan chirurgie overwogen worden (IIb); anders elke 6 maanden nieuwe beeldvorming; bij groei >3 mm/jaar chirurgie overwegen.")
	}
	if maxAo >= 50 && maxAo <= 54 {
		recs = append(recs, "Aorta 50-54 mm: baseline CT/MR aorta; bij wortel-fenotype en bicuspide klep chirurgie (I); bij wortel-fenotype en tricuspide klep chirurgie te overwegen (IIb).")
	}
	if maxAo > 55 {
		recs = append(recs, "Aorta >55 mm: chirurgie (I).")
	}
	recs = append(recs, "Bij aorta-aneurysma of thoracale dissectie met HTAD-risicofactoren genetische testing aangewezen (<60 j, geen klassieke risicofactoren, familiaal plots overlijden, andere aneurysmata, familiale TAD, syndromale kenmerken Marfan/Loeys-Dietz/Ehlers-Danlos).")
	return recs
}
