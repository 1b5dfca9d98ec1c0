package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestDiastolicFunction(t *testing.T) {
	tests := []struct {
		name     string
		ea       *float64
		ee       *float64
		lavi     *float64
		pasp     *float64
		expected string
	}{
		{"No E/A ratio", nil, f(15), f(40), f(35), DiastolicNormal},
		{"Low E/A", f(0.5), nil, nil, nil, DiastolicGrade1},
		{"High E/A", f(2.5), nil, nil, nil, DiastolicGrade3},
		{"Intermediate with two criteria", f(1.2), f(14), f(40), nil, DiastolicGrade2},
		{"Intermediate with one criterion", f(1.2), f(14), nil, nil, DiastolicNormal},
		{"Intermediate with PASP criterion", f(1.2), f(14), nil, f(35), DiastolicGrade2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestDiastolicFunction(tt.ea, tt.ee, tt.lavi, tt.pasp))
		})
	}
}

func TestDiastolicOptions(t *testing.T) {
	options := DiastolicOptions()
	assert.Len(t, options, 4)
	assert.Equal(t, DiastolicNormal, options[0])
	assert.Equal(t, DiastolicGrade3, options[3])
}

func TestParseCVD(t *testing.T) {
	assert.Equal(t, 3.0, ParseCVD("3"))
	assert.Equal(t, 8.0, ParseCVD("8"))
	assert.Equal(t, 15.0, ParseCVD("15+"))
	assert.Equal(t, 0.0, ParseCVD(""))
	assert.Equal(t, 0.0, ParseCVD("n/a"))
}

func TestPASPText(t *testing.T) {
	assert.Equal(t, "Geen adequaat TR-signaal voor PASP", PASPText(nil, "8"))
	assert.Equal(t, "Pulmonale hypertensie met PASP 38 mmHg.", PASPText(f(30), "8"))
	assert.Equal(t, "Normale pulmonale drukken met PASP 28 mmHg.", PASPText(f(25), "3"))
	assert.Equal(t, "Pulmonale hypertensie met PASP 40 mmHg.", PASPText(f(25), "15+"))
}
