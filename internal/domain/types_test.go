package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSexIsValid(t *testing.T) {
	tests := []struct {
		name     string
		sex      Sex
		expected bool
	}{
		{"Male", Male, true},
		{"Female", Female, true},
		{"Empty", Sex(""), false},
		{"Unknown", Sex("X"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sex.IsValid())
		})
	}
}

func TestStudyTypeIsValid(t *testing.T) {
	for _, st := range []StudyType{StudyEcho, StudyFietstest, StudyECG, StudyHolter, StudyCIED, StudyBrief} {
		assert.True(t, st.IsValid(), st.String())
	}
	assert.False(t, StudyType("mri").IsValid())
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"Plain number", "42", Float(42)},
		{"Decimal point", "3.5", Float(3.5)},
		{"Decimal comma", "3,5", Float(3.5)},
		{"Whitespace", "  7.2  ", Float(7.2)},
		{"Empty", "", nil},
		{"Garbage", "n/a", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFloat(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.5, Round1(1.45))
	assert.Equal(t, 1.4, Round1(1.44))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 0.375, Round3(0.3751), "Round3 keeps three decimals")
}

func TestPatientBodySurfaceArea(t *testing.T) {
	p := &PatientContext{Sex: Male, Length: Float(175), Weight: Float(75)}
	assert.InDelta(t, 1.9094, p.BodySurfaceArea(), 0.001)

	// A stored BSA takes precedence over the derived one
	p.BSA = Float(2.1)
	assert.Equal(t, 2.1, p.BodySurfaceArea())

	assert.Equal(t, 0.0, (&PatientContext{Sex: Male}).BodySurfaceArea())

	var nilPatient *PatientContext
	assert.Equal(t, 0.0, nilPatient.BodySurfaceArea())
}

func TestPatientBMI(t *testing.T) {
	p := &PatientContext{Sex: Female, Length: Float(160), Weight: Float(64)}
	bmi := p.BMI()
	require.NotNil(t, bmi)
	assert.Equal(t, 25.0, *bmi)

	assert.Nil(t, (&PatientContext{Sex: Female}).BMI())
}

func TestPatientValidate(t *testing.T) {
	var nilPatient *PatientContext
	assert.ErrorIs(t, nilPatient.Validate(), ErrMissingPatient)
	assert.ErrorIs(t, (&PatientContext{Sex: Sex("?")}).Validate(), ErrInvalidSex)
	assert.NoError(t, (&PatientContext{Sex: Female}).Validate())
}
