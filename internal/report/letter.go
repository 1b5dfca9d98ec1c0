package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ClinicalExam holds the bedside findings for the Klinisch onderzoek section.
type ClinicalExam struct {
	Pulse        *float64 `json:"pols,omitempty"`
	SystolicBP   *float64 `json:"systolic_bp,omitempty"`
	DiastolicBP  *float64 `json:"diastolic_bp,omitempty"`
	Auscultation *string  `json:"auscultation,omitempty"`
}

// Investigation is one technical investigation included in the letter.
type Investigation struct {
	Label       string  `json:"label"`
	Text        string  `json:"text"`
	PerformedOn *string `json:"performed_on,omitempty"`
}

// LetterInput bundles everything the consult letter needs.
type LetterInput struct {
	PatientName      string          `json:"patient_name,omitempty"`
	ConsultDate      *time.Time      `json:"consult_date,omitempty"`
	Voorgeschiedenis string          `json:"voorgeschiedenis"`
	Anamnese         string          `json:"anamnese"`
	Thuismedicatie   string          `json:"thuismedicatie"`
	Exam             ClinicalExam    `json:"clinical_exam"`
	Investigations   []Investigation `json:"investigations,omitempty"`
	Bespreking       string          `json:"bespreking"`
}

const sectionRule = "-------------------------"

// LetterComposer renders the consult letter for the referring physician.
type LetterComposer struct {
	log *logrus.Logger
}

// NewLetterComposer creates a letter composer.
func NewLetterComposer(logger *logrus.Logger) *LetterComposer {
	return &LetterComposer{log: logger}
}

// Compose renders the letter. Free-text sections that were left empty render
// as "-" so the section structure stays visible. Investigations appear in a
// fixed order regardless of the order they were handed in: ECG, ergometry,
// echo, device follow-up, Holter.
func (c *LetterComposer) Compose(in LetterInput) string {
	dateTxt := "vandaag"
	if in.ConsultDate != nil {
		dateTxt = in.ConsultDate.Format("02-01-2006")
	}

	lines := []string{
		"Geachte collega",
		"",
		fmt.Sprintf("Wij zagen uw patiënt op de raadpleging cardiologie op %s.", dateTxt),
		"",
	}

	lines = appendSection(lines, "Voorgeschiedenis", in.Voorgeschiedenis)
	lines = appendSection(lines, "Anamnese", in.Anamnese)
	lines = appendSection(lines, "Huidige Medicatie", in.Thuismedicatie)

	lines = append(lines, "Klinisch onderzoek", sectionRule, "Algemene inspectie: normale indruk")
	if in.Exam.Pulse != nil {
		lines = append(lines, fmt.Sprintf("Pols %d/min.", roundInt(*in.Exam.Pulse)))
	}
	if in.Exam.SystolicBP != nil && in.Exam.DiastolicBP != nil {
		lines = append(lines, fmt.Sprintf("Bloeddruk %d/%d mmHg.",
			roundInt(*in.Exam.SystolicBP), roundInt(*in.Exam.DiastolicBP)))
	}
	if in.Exam.Auscultation != nil && strings.TrimSpace(*in.Exam.Auscultation) != "" {
		lines = append(lines, "Hartauscultatie: "+strings.TrimSpace(*in.Exam.Auscultation))
	}
	lines = append(lines, "")

	type slot struct {
		substrings []string
		heading    string
	}
	order := []slot{
		{[]string{"ecg", "elektrocardiogram"}, "Elektrocardiogram in rust"},
		{[]string{"fietstest", "cyclo", "ergometrie"}, "Cyclo-ergometrie"},
		{[]string{"echo", "transthoracale", "transthoracische"}, "Transthoracale Echocardiografie"},
		{[]string{"cied", "device", "pacemaker"}, "Device controle"},
		{[]string{"holter"}, "Holter"},
	}
	for _, s := range order {
		sec := findInvestigation(in.Investigations, s.substrings)
		if sec == nil {
			continue
		}
		heading := s.heading
		if sec.PerformedOn != nil && *sec.PerformedOn != "" {
			heading = fmt.Sprintf("%s (%s)", heading, *sec.PerformedOn)
		}
		text := sec.Text
		if text == "" {
			text = "-"
		}
		lines = append(lines, heading, sectionRule, text, "")
	}

	lines = appendSection(lines, "Bespreking", in.Bespreking)
	lines = append(lines, "Met collegiale hoogachting,", "Dr. A. Ballet Cardiologie")

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func appendSection(lines []string, heading, body string) []string {
	text := strings.TrimSpace(body)
	if text == "" {
		text = "-"
	}
	return append(lines, heading, sectionRule, text, "")
}

func findInvestigation(list []Investigation, substrings []string) *Investigation {
	for i := range list {
		label := strings.ToLower(list[i].Label)
		for _, s := range substrings {
			if strings.Contains(label, strings.ToLower(s)) {
				return &list[i]
			}
		}
	}
	return nil
}
