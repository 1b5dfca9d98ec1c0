package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiac-report-server/internal/domain"
)

func cycloRecord() *domain.CycloRecord {
	return &domain.CycloRecord{
		Patient: &domain.PatientContext{
			Sex:    domain.Male,
			Age:    domain.Float(50),
			Weight: domain.Float(75),
		},
		StartWatt:     domain.Float(50),
		IncrementWatt: domain.Float(20),
		MaxWatt:       domain.Float(150),
		DurationAtMax: domain.Float(45),
		MaxHR:         domain.Float(160),
		BPEvolution:   domain.StringPtr("Normale bloeddrukrespons"),
		Rhythm:        domain.StringPtr("Sinusritme"),
		EffortType:    domain.StringPtr("Maximale inspanning"),
		StopCriterium: domain.StringPtr("vermoeidheid"),
		ECGChanges:    domain.StringPtr("geen ST-deviaties"),
		Conclusion:    domain.StringPtr("Normale fietsproef"),
	}
}

func TestCycloMetrics(t *testing.T) {
	composer := NewCycloComposer(nil)

	m := composer.Metrics(cycloRecord())

	require.NotNil(t, m.PredictedMaxHR)
	assert.Equal(t, 173, *m.PredictedMaxHR)
	require.NotNil(t, m.PctHRDisplay)
	assert.Equal(t, 92.5, *m.PctHRDisplay)

	// ACSM estimate from 150 W at 75 kg
	require.NotNil(t, m.VO2Observed)
	assert.Equal(t, 29.0, *m.VO2Observed)
	require.NotNil(t, m.VO2Band)
	assert.Equal(t, "25-75%", *m.VO2Band)
	require.NotNil(t, m.VO2BandText)
	assert.Equal(t, "Normale inspanningscapaciteit", *m.VO2BandText)

	require.NotNil(t, m.PredictedWatt)
	assert.Equal(t, 177.0, *m.PredictedWatt)
	require.NotNil(t, m.PredictedWattPct)
	assert.Equal(t, 84.7, *m.PredictedWattPct)

	require.NotEmpty(t, m.SummaryLines)
	assert.Equal(t, "Max HR: 160 bpm (92.5% of predicted 173 bpm)", m.SummaryLines[0])
}

func TestCycloMetricsEmptyRecord(t *testing.T) {
	composer := NewCycloComposer(nil)

	m := composer.Metrics(nil)
	assert.Nil(t, m.PredictedMaxHR)
	assert.Empty(t, m.SummaryLines)

	// Without a weight there is no VO2 estimate
	m = composer.Metrics(&domain.CycloRecord{MaxWatt: domain.Float(150)})
	assert.Nil(t, m.VO2Observed)
}

func TestCycloCompose(t *testing.T) {
	composer := NewCycloComposer(nil)
	rec := cycloRecord()
	m := composer.Metrics(rec)

	text := composer.Compose(rec, m)
	lines := strings.Split(text, "\n")

	assert.Equal(t, "Start aan 50 W. Opdrijven van de belasting met 20 W om de minuut.", lines[0])
	assert.Equal(t, "Maximale belasting tot 150 Watt gedurende 45 seconden.", lines[1])
	assert.Equal(t, "Maximale hartslag bedraagt 160/min (92.5% predicted)", lines[2])
	assert.Equal(t, "VO2: 29.0 ml·kg⁻¹·min⁻¹ (87.9% predicted) — Percentiel: 25-75% (Normale inspanningscapaciteit)", lines[3])
	assert.Equal(t, "Normale bloeddrukrespons. Sinusritme.", lines[4])
	assert.Equal(t, "Conclusie: Normale fietsproef.", lines[len(lines)-1])
}

func TestCycloComposeEmptyRecord(t *testing.T) {
	composer := NewCycloComposer(nil)

	text := composer.Compose(nil, domain.CycloMetrics{})
	lines := strings.Split(text, "\n")

	assert.Equal(t, "Start aan 0 W. Opdrijven van de belasting met 0 W om de minuut.", lines[0])
	assert.Equal(t, "Maximale belasting niet bereikt of niet gerapporteerd.", lines[1])
	assert.Equal(t, "Maximale hartslag bedraagt 0/min", lines[2])
}

func TestCycloBrief(t *testing.T) {
	composer := NewCycloComposer(nil)
	rec := cycloRecord()
	m := composer.Metrics(rec)

	brief := composer.Brief(rec, m)

	assert.Contains(t, brief, "Max belasting 150 W")
	assert.Contains(t, brief, "HF 160 bpm (92% voorspeld)")
	assert.Contains(t, brief, "VO₂ 29.0 ml·kg⁻¹·min⁻¹ (88% vs p50)")
	assert.Contains(t, brief, "Normale fietsproef")

	assert.Equal(t, "Geen fietsproefgegevens beschikbaar.", composer.Brief(nil, domain.CycloMetrics{}))
}
