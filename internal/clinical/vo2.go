package clinical

import "github.com/cardiac-report-server/internal/domain"

// VO2Reference holds the cycle-ergometer VO2max percentiles (mL/kg/min) for
// one sex/age bucket, from the FRIEND registry.
type VO2Reference struct {
	P95, P75, P50, P25, P5 float64
}

var vo2RefValues = map[domain.Sex]map[int]VO2Reference{
	domain.Male: {
		20: {54, 48, 43, 38, 33},
		30: {50, 44, 40, 35, 30},
		40: {47, 41, 36, 32, 28},
		50: {43, 38, 33, 29, 25},
		60: {38, 34, 30, 26, 22},
		70: {34, 30, 26, 23, 20},
	},
	domain.Female: {
		20: {43, 38, 34, 30, 26},
		30: {40, 36, 32, 28, 24},
		40: {36, 32, 29, 26, 22},
		50: {33, 30, 27, 24, 20},
		60: {30, 27, 24, 21, 18},
		70: {27, 25, 22, 19, 17},
	},
}

func vo2AgeBucket(age *float64) int {
	a := 50
	if age != nil {
		a = int(*age)
	}
	switch {
	case a < 30:
		return 20
	case a < 40:
		return 30
	case a < 50:
		return 40
	case a < 60:
		return 50
	case a < 70:
		return 60
	default:
		return 70
	}
}

// VO2ReferenceFor returns the percentile set for the sex/age bucket. Ages
// below 30 share the youngest bucket; an unknown age falls in the 50s.
func VO2ReferenceFor(sex domain.Sex, age *float64) VO2Reference {
	table := vo2RefValues[domain.Female]
	if sex == domain.Male {
		table = vo2RefValues[domain.Male]
	}
	return table[vo2AgeBucket(age)]
}

// VO2PercentileResult is the interpretation of an observed VO2max against
// the reference percentiles.
type VO2PercentileResult struct {
	PercentVsP50 float64 // observed / p50 * 100, one decimal
	Band         string  // percentile band, e.g. "25-75%"
	BandText     string  // Dutch capacity label
}

// VO2Percentile places an observed VO2max (mL/kg/min) in its percentile band.
func VO2Percentile(sex domain.Sex, age *float64, vo2 float64) VO2PercentileResult {
	ref := VO2ReferenceFor(sex, age)
	res := VO2PercentileResult{
		PercentVsP50: domain.Round1(vo2 / ref.P50 * 100.0),
	}
	switch {
	case vo2 >= ref.P95:
		res.Band, res.BandText = ">=95%", "Uitstekende inspanningscapaciteit"
	case vo2 >= ref.P75:
		res.Band, res.BandText = "75-95%", "Bovengemiddelde inspanningscapaciteit"
	case vo2 >= ref.P25:
		res.Band, res.BandText = "25-75%", "Normale inspanningscapaciteit"
	case vo2 >= ref.P5:
		res.Band, res.BandText = "5-25%", "Ondergemiddelde inspanningscapaciteit"
	default:
		res.Band, res.BandText = "<5%", "Slechte inspanningscapaciteit"
	}
	return res
}
