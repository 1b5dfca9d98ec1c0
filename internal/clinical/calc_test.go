package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiac-report-server/internal/domain"
)

func TestBSAMosteller(t *testing.T) {
	tests := []struct {
		name     string
		lengthCm float64
		weightKg float64
		expected float64
	}{
		{"Average adult", 175, 75, 1.9094},
		{"Small patient", 160, 50, 1.4907},
		{"Large patient", 190, 110, 2.4094},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BSAMosteller(tt.lengthCm, tt.weightKg), 0.001)
		})
	}
}

func TestLVMass(t *testing.T) {
	// ASE cube formula with 10/48/9 mm walls and cavity
	assert.Equal(t, 158.8, LVMass(10, 48, 9))
}

func TestRelativeWallThickness(t *testing.T) {
	assert.Equal(t, 0.375, RelativeWallThickness(9, 48))
	assert.Equal(t, 0.0, RelativeWallThickness(9, 0), "Zero cavity diameter should not divide")
}

func TestTeichholzEF(t *testing.T) {
	ef := TeichholzEF(4.8, 3.0)
	require.NotNil(t, ef)
	assert.InDelta(t, 67.4, *ef, 0.05)

	assert.Nil(t, TeichholzEF(0, 3.0), "Non-positive EDD should yield no EF")
	assert.Nil(t, TeichholzEF(4.8, -1), "Negative ESD should yield no EF")
}

func TestTanakaMaxHR(t *testing.T) {
	tests := []struct {
		age      float64
		expected int
	}{
		{20, 194},
		{50, 173},
		{80, 152},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TanakaMaxHR(tt.age))
	}
}

func TestVO2FromWatt(t *testing.T) {
	vo2 := VO2FromWatt(150, 75)
	require.NotNil(t, vo2)
	assert.Equal(t, 29.0, *vo2)

	assert.Nil(t, VO2FromWatt(150, 0), "Missing weight should yield no estimate")
}

func TestPredictedWattage(t *testing.T) {
	w := PredictedWattage(33, 75)
	require.NotNil(t, w)
	assert.Equal(t, 177.0, *w)

	assert.Nil(t, PredictedWattage(33, 0))
}

func TestQTcFormulas(t *testing.T) {
	// At 60 bpm RR is one second, so both corrections return QT unchanged
	bazett := QTcBazett(400, 60)
	fridericia := QTcFridericia(400, 60)
	require.NotNil(t, bazett)
	require.NotNil(t, fridericia)
	assert.Equal(t, 400.0, *bazett)
	assert.Equal(t, 400.0, *fridericia)

	bazett = QTcBazett(400, 75)
	require.NotNil(t, bazett)
	assert.Equal(t, 447.2, *bazett)

	assert.Nil(t, QTcBazett(400, 0))
	assert.Nil(t, QTcFridericia(400, 0))
}

func TestPredictedAortaRange(t *testing.T) {
	low, high, ok := PredictedAortaRange(AortaSinus, 60, domain.Male, 175, 75)
	require.True(t, ok)
	assert.Equal(t, 23.92, low)
	assert.Equal(t, 46.87, high)

	_, _, ok = PredictedAortaRange(AortaSegment("AoDesc"), 60, domain.Male, 175, 75)
	assert.False(t, ok, "Unknown segment has no reference equations")
}

func TestAortaSegmentDilated(t *testing.T) {
	assert.True(t, AortaSegmentDilated(AortaSinus, 21))
	assert.False(t, AortaSegmentDilated(AortaSinus, 20))
	assert.False(t, AortaSegmentDilated(AortaSegment("AoDesc"), 99))
}
