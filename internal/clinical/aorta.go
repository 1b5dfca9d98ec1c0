package clinical

import "github.com/cardiac-report-server/internal/domain"

// AortaSegment identifies a proximal aorta measurement site.
type AortaSegment string

const (
	AortaAnnulus   AortaSegment = "AoA"
	AortaSinus     AortaSegment = "AoSV"
	AortaSTJ       AortaSegment = "AoSTJ"
	AortaAscending AortaSegment = "AscAo"
)

// aortaCoeffs are the linear regression coefficients for the predicted
// normal range of one segment: intercept + age + male + height + weight,
// diameters in mm (Devereux-style allometric reference equations).
type aortaCoeffs struct {
	intercept, age, male, height, weight float64
}

var aortaLimits = map[AortaSegment]struct{ low, high aortaCoeffs }{
	AortaAnnulus: {
		low:  aortaCoeffs{10.828, 0.001, 0.871, 0.013, 0.020},
		high: aortaCoeffs{14.970, 0.020, 1.278, 0.037, 0.034},
	},
	AortaSinus: {
		low:  aortaCoeffs{3.483, 0.086, 1.731, 0.062, 0.036},
		high: aortaCoeffs{12.129, 0.125, 2.589, 0.113, 0.065},
	},
	AortaSTJ: {
		low:  aortaCoeffs{0.600, 0.061, 0.707, 0.056, 0.026},
		high: aortaCoeffs{8.562, 0.097, 1.499, 0.103, 0.054},
	},
	AortaAscending: {
		low:  aortaCoeffs{8.189, 0.041, 0.655, -0.007, 0.040},
		high: aortaCoeffs{21.214, 0.101, 1.961, 0.069, 0.087},
	},
}

// indexedDilationCutoffs are the BSA-indexed thresholds (mm/m²) above which
// a segment counts as dilated in the echo report.
var indexedDilationCutoffs = map[AortaSegment]float64{
	AortaAnnulus:   14,
	AortaSinus:     20,
	AortaSTJ:       16,
	AortaAscending: 17,
}

func (c aortaCoeffs) predict(age float64, male bool, heightCm, weightKg float64) float64 {
	m := 0.0
	if male {
		m = 1.0
	}
	return domain.Round2(c.intercept + c.age*age + c.male*m + c.height*heightCm + c.weight*weightKg)
}

// PredictedAortaRange returns the predicted normal diameter range in mm for
// one segment given the patient's age, sex, height and weight.
func PredictedAortaRange(seg AortaSegment, age float64, sex domain.Sex, heightCm, weightKg float64) (low, high float64, ok bool) {
	limits, found := aortaLimits[seg]
	if !found {
		return 0, 0, false
	}
	male := sex == domain.Male
	return limits.low.predict(age, male, heightCm, weightKg), limits.high.predict(age, male, heightCm, weightKg), true
}

// AortaSegmentDilated reports whether a segment's BSA-indexed diameter
// exceeds its dilation cutoff.
func AortaSegmentDilated(seg AortaSegment, indexedMmPerM2 float64) bool {
	cutoff, ok := indexedDilationCutoffs[seg]
	if !ok {
		return false
	}
	return indexedMmPerM2 > cutoff
}
