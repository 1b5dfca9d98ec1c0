package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLetterComposeEmptyInput(t *testing.T) {
	composer := NewLetterComposer(nil)

	letter := composer.Compose(LetterInput{})

	assert.True(t, strings.HasPrefix(letter, "Geachte collega"))
	assert.Contains(t, letter, "Wij zagen uw patiënt op de raadpleging cardiologie op vandaag.")

	// Empty free-text sections render as a dash placeholder
	assert.Contains(t, letter, "Voorgeschiedenis\n"+sectionRule+"\n-")
	assert.Contains(t, letter, "Anamnese\n"+sectionRule+"\n-")
	assert.Contains(t, letter, "Huidige Medicatie\n"+sectionRule+"\n-")
	assert.Contains(t, letter, "Bespreking\n"+sectionRule+"\n-")
	assert.Contains(t, letter, "Algemene inspectie: normale indruk")
	assert.True(t, strings.HasSuffix(letter, "Dr. A. Ballet Cardiologie\n"))
}

func TestLetterComposeConsultDate(t *testing.T) {
	composer := NewLetterComposer(nil)

	date := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	letter := composer.Compose(LetterInput{ConsultDate: &date})

	assert.Contains(t, letter, "op de raadpleging cardiologie op 12-03-2024.")
}

func TestLetterComposeClinicalExam(t *testing.T) {
	composer := NewLetterComposer(nil)

	pulse := 72.0
	sys := 135.0
	dia := 85.0
	ausc := "zuivere harttonen, geen souffle"
	letter := composer.Compose(LetterInput{
		Exam: ClinicalExam{Pulse: &pulse, SystolicBP: &sys, DiastolicBP: &dia, Auscultation: &ausc},
	})

	assert.Contains(t, letter, "Pols 72/min.")
	assert.Contains(t, letter, "Bloeddruk 135/85 mmHg.")
	assert.Contains(t, letter, "Hartauscultatie: zuivere harttonen, geen souffle")
}

func TestLetterComposeInvestigationOrder(t *testing.T) {
	composer := NewLetterComposer(nil)

	performedOn := "10-03-2024"
	letter := composer.Compose(LetterInput{
		Investigations: []Investigation{
			{Label: "holter", Text: "Holter zonder afwijkingen"},
			{Label: "echo", Text: "Normale echo", PerformedOn: &performedOn},
			{Label: "ecg", Text: "Sinusritme"},
		},
	})

	// Fixed order regardless of input order: ECG before echo before Holter
	ecgIdx := strings.Index(letter, "Elektrocardiogram in rust")
	echoIdx := strings.Index(letter, "Transthoracale Echocardiografie (10-03-2024)")
	holterIdx := strings.Index(letter, "Holter")
	assert.Greater(t, ecgIdx, -1)
	assert.Greater(t, echoIdx, ecgIdx)
	assert.Greater(t, holterIdx, echoIdx)

	assert.NotContains(t, letter, "Cyclo-ergometrie", "Absent investigations leave no heading")
	assert.NotContains(t, letter, "Device controle")
}

func TestLetterComposeSections(t *testing.T) {
	composer := NewLetterComposer(nil)

	letter := composer.Compose(LetterInput{
		Voorgeschiedenis: "Arteriële hypertensie",
		Anamnese:         "Geen klachten",
		Thuismedicatie:   "Bisoprolol 2.5 mg",
		Bespreking:       "Stabiele situatie, controle over 1 jaar.",
	})

	assert.Contains(t, letter, "Voorgeschiedenis\n"+sectionRule+"\nArteriële hypertensie")
	assert.Contains(t, letter, "Huidige Medicatie\n"+sectionRule+"\nBisoprolol 2.5 mg")
	assert.Contains(t, letter, "Bespreking\n"+sectionRule+"\nStabiele situatie, controle over 1 jaar.")
}
