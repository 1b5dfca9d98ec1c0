package clinical

import "math"

// MyPACELowerRate suggests a personalized accelerated lower rate for HFpEF
// pacing per the myPACE trial formula:
// ((height_cm * -0.37) + 135) * (LVEF/50)^(1/4), rounded to the nearest bpm.
// Returns nil when height or LVEF is unusable.
func MyPACELowerRate(heightCm, lvef *float64) *int {
	if heightCm == nil || lvef == nil || *lvef <= 0 {
		return nil
	}
	factor := math.Sqrt(math.Sqrt(*lvef / 50.0))
	v := int(math.Round((*heightCm*-0.37 + 135.0) * factor))
	return &v
}

// SuggestedUpperTracking returns 85% of the Tanaka age-predicted maximal
// heart rate, the conventional upper tracking rate ceiling.
func SuggestedUpperTracking(age float64) int {
	return int(math.Round(float64(TanakaMaxHR(age)) * 0.85))
}

// AVDelayReduction returns the rate-adaptive AV delay shortening in ms for
// the span between lower rate and upper tracking rate: 5 ms per 10 bpm.
func AVDelayReduction(lowerRate, upperTracking int) int {
	diff := upperTracking - lowerRate
	if diff <= 0 {
		return 0
	}
	return int(math.Round(float64(diff) / 10.0 * 5.0))
}

// RateAdaptiveAVDelay shortens a baseline AV delay by the computed reduction,
// never below the 50 ms floor.
func RateAdaptiveAVDelay(baseMs, reductionMs int) int {
	v := baseMs - reductionMs
	if v < 50 {
		return 50
	}
	return v
}

// OptimalPVARP returns 60000/UTR - sensed AV delay - 20 ms, floored at 0.
// Keeping the total atrial refractory period inside the upper tracking
// interval avoids 2:1 lock-in below the programmed UTR.
func OptimalPVARP(upperTracking, sensedAVMs int) *int {
	if upperTracking <= 0 {
		return nil
	}
	v := int(math.Round(60000.0/float64(upperTracking) - float64(sensedAVMs) - 20.0))
	if v < 0 {
		v = 0
	}
	return &v
}

// RecommendedSensedAV derives the sensed AV delay from the paced one
// (paced - 30 ms, floor 50 ms).
func RecommendedSensedAV(pacedAVMs int) int {
	v := pacedAVMs - 30
	if v < 50 {
		return 50
	}
	return v
}
