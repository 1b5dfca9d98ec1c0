package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardiac-report-server/internal/domain"
)

func TestVO2ReferenceFor(t *testing.T) {
	age := 55.0
	ref := VO2ReferenceFor(domain.Male, &age)
	assert.Equal(t, 33.0, ref.P50)

	ref = VO2ReferenceFor(domain.Female, &age)
	assert.Equal(t, 27.0, ref.P50)

	// Unknown age falls in the 50s bucket
	ref = VO2ReferenceFor(domain.Male, nil)
	assert.Equal(t, 33.0, ref.P50)

	young := 22.0
	ref = VO2ReferenceFor(domain.Male, &young)
	assert.Equal(t, 43.0, ref.P50)
}

func TestVO2Percentile(t *testing.T) {
	age := 55.0

	tests := []struct {
		name         string
		vo2          float64
		expectedPct  float64
		expectedBand string
		expectedText string
	}{
		{"At the median", 33, 100.0, "25-75%", "Normale inspanningscapaciteit"},
		{"Excellent", 44, 133.3, ">=95%", "Uitstekende inspanningscapaciteit"},
		{"Above average", 40, 121.2, "75-95%", "Bovengemiddelde inspanningscapaciteit"},
		{"Below average", 27, 81.8, "5-25%", "Ondergemiddelde inspanningscapaciteit"},
		{"Poor", 20, 60.6, "<5%", "Slechte inspanningscapaciteit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := VO2Percentile(domain.Male, &age, tt.vo2)
			assert.Equal(t, tt.expectedPct, res.PercentVsP50)
			assert.Equal(t, tt.expectedBand, res.Band)
			assert.Equal(t, tt.expectedText, res.BandText)
		})
	}
}
