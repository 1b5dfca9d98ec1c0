package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardiac-report-server/internal/domain"
)

func TestRecommendationsEmpty(t *testing.T) {
	engine := NewRecommendationEngine(nil)

	assert.Nil(t, engine.Recommendations(nil))
	assert.Empty(t, engine.Recommendations(&domain.EchoRecord{}))
}

func TestRecommendationsSevereMR(t *testing.T) {
	engine := NewRecommendationEngine(nil)

	rec := &domain.EchoRecord{
		Patient: &domain.PatientContext{Sex: domain.Male},
		LVEF:    domain.Float(55),
		Flags:   map[string]bool{domain.FlagMRSymptomatic: true},
	}
	rec.SetMeasurement(domain.MeasMKEROA, 0.5)

	recs := engine.Recommendations(rec)

	assert.Contains(t, recs, "Ernstige primaire mitralisregurgitatie vastgesteld.")
	assert.Contains(t, recs, "Mitralisklepchirurgie is aangewezen bij ernstige primaire MR met symptomen (I-B).")
	assert.Contains(t, recs, "Chirurgie aangewezen: LVEF ≤60% (I-B).")
	assert.Contains(t, recs, "Chirurgisch klepherstel heeft de voorkeur (I-B).")
	assert.Contains(t, recs, "TEER kan worden overwogen bij symptomatische ernstige MR met hoog chirurgisch risico en geschikte anatomie.")
}

func TestRecommendationsSevereASByAge(t *testing.T) {
	engine := NewRecommendationEngine(nil)

	rec := &domain.EchoRecord{
		Patient: &domain.PatientContext{Sex: domain.Female, Age: domain.Float(78)},
	}
	rec.SetMeasurement(domain.MeasAKVmax, 4.3)

	recs := engine.Recommendations(rec)

	assert.Contains(t, recs, "Ernstige aortaklepstenose vastgesteld.")
	assert.Contains(t, recs, "TAVI aanbevolen bij geschikte anatomie (I-A).")

	// Younger patients get the SAVR-first statement instead
	young := &domain.EchoRecord{
		Patient: &domain.PatientContext{Sex: domain.Male, Age: domain.Float(58)},
	}
	young.SetMeasurement(domain.MeasAKVmax, 4.3)

	recs = engine.Recommendations(young)
	assert.Contains(t, recs, "SAVR aanbevolen bij leeftijd <70 jaar en laag operatierisico (I-B). TAVI kan worden overwogen afhankelijk van anatomie/risico (IIa/IIb).")
}

func TestRecommendationsAortaSurveillance(t *testing.T) {
	engine := NewRecommendationEngine(nil)

	rec := &domain.EchoRecord{
		Patient: &domain.PatientContext{Sex: domain.Male, BSA: domain.Float(2.0)},
	}
	rec.SetMeasurement(domain.MeasAscAo, 46)

	recs := engine.Recommendations(rec)

	assert.Contains(t, recs, "AscAo 45-49 mm: controle CT/MRI/echo om de 6-12 maanden.")
	assert.Contains(t, recs, "Aorta 45-49 mm: baseline CT/MR aorta en TTE elke 6 maanden.")

	// The genetic testing reminder closes every aorta ladder
	assert.Contains(t, recs[len(recs)-1], "genetische testing aangewezen")
}

func TestRecommendationsAortaSurgery(t *testing.T) {
	engine := NewRecommendationEngine(nil)

	rec := &domain.EchoRecord{Patient: &domain.PatientContext{Sex: domain.Male}}
	rec.SetMeasurement(domain.MeasAscAo, 56)

	recs := engine.Recommendations(rec)

	assert.Contains(t, recs, "Aorta ascendens ≥55 mm: chirurgie aanbevolen (I-B).")
	assert.Contains(t, recs, "Aorta >55 mm: chirurgie (I).")
}

func TestRecommendationsAgreeWithComposerOnAS(t *testing.T) {
	engine := NewRecommendationEngine(nil)
	composer := NewEchoComposer(nil)

	cases := []struct {
		name   string
		vmax   float64
		severe bool
	}{
		{"moderate stenosis", 3.4, false},
		{"severe stenosis", 4.1, true},
		{"very severe stenosis", 5.2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &domain.EchoRecord{Patient: &domain.PatientContext{Sex: domain.Male, Age: domain.Float(75)}}
			rec.SetMeasurement(domain.MeasAKVmax, tc.vmax)

			composer.Enrich(rec)
			recs := engine.Recommendations(rec)

			recommended := false
			for _, r := range recs {
				if r == "Ernstige aortaklepstenose vastgesteld." {
					recommended = true
				}
			}
			assert.Equal(t, tc.severe, recommended)
			if tc.severe {
				assert.Contains(t, *rec.AKStenosis, "rnstige stenose")
			} else {
				assert.Equal(t, "Matige stenose", *rec.AKStenosis)
			}
		})
	}
}
