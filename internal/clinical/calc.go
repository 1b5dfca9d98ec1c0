// Package clinical implements the calculators and classification tables used
// by the report composers. Functions are pure: measurements in, derived value
// or Dutch severity label out. Threshold tables follow the ASE/EACVI chamber
// quantification recommendations and the FRIEND registry for exercise
// capacity.
package clinical

import (
	"math"

	"github.com/cardiac-report-server/internal/domain"
)

// BSAMosteller returns the Mosteller body surface area in m².
func BSAMosteller(lengthCm, weightKg float64) float64 {
	return math.Sqrt((lengthCm * weightKg) / 3600.0)
}

// LVMass returns the left ventricular mass in grams per the ASE linear cube
// formula. Inputs are wall thicknesses and cavity dimension in mm; the
// formula itself works in cm.
func LVMass(ivsdMm, lviddMm, lvpwdMm float64) float64 {
	ivs := ivsdMm / 10.0
	lvidd := lviddMm / 10.0
	lvpw := lvpwdMm / 10.0
	mass := 0.8*(1.04*(math.Pow(ivs+lvidd+lvpw, 3)-math.Pow(lvidd, 3))) + 0.6
	return domain.Round1(mass)
}

// RelativeWallThickness returns 2*LVPWd/LVIDd rounded to three decimals,
// or 0.0 when LVIDd is not usable.
func RelativeWallThickness(lvpwdMm, lviddMm float64) float64 {
	if lviddMm == 0 {
		return 0.0
	}
	return domain.Round3((2.0 * lvpwdMm) / lviddMm)
}

// TeichholzVolume returns the ventricular volume in mL for a cavity diameter
// in cm: (7 / (2.4 + D)) * D³.
func TeichholzVolume(diameterCm float64) float64 {
	return (7.0 / (2.4 + diameterCm)) * math.Pow(diameterCm, 3)
}

// TeichholzEF derives the ejection fraction in percent from end-diastolic and
// end-systolic diameters in cm, rounded to one decimal. Returns nil when the
// diameters do not produce a valid volume pair.
func TeichholzEF(eddCm, esdCm float64) *float64 {
	if eddCm <= 0 || esdCm < 0 {
		return nil
	}
	edv := TeichholzVolume(eddCm)
	esv := TeichholzVolume(esdCm)
	if edv <= 0 {
		return nil
	}
	ef := domain.Round1((edv - esv) / edv * 100.0)
	return &ef
}

// TanakaMaxHR returns the age-predicted maximal heart rate 208 - 0.7*age,
// rounded to the nearest beat.
func TanakaMaxHR(age float64) int {
	return int(math.Round(208.0 - 0.7*age))
}

// VO2FromWatt estimates peak VO2 in mL/kg/min from the maximal workload on a
// cycle ergometer (ACSM leg ergometry equation), rounded to one decimal.
func VO2FromWatt(watt, weightKg float64) *float64 {
	if weightKg <= 0 {
		return nil
	}
	v := domain.Round1(1.8*(watt*6.12)/weightKg + 7.0)
	return &v
}

// PredictedWattage inverts the VO2 equation at the p50 reference value to get
// the expected maximal workload for this patient, rounded to one decimal.
func PredictedWattage(p50VO2, weightKg float64) *float64 {
	if weightKg <= 0 {
		return nil
	}
	w := domain.Round1(weightKg * (p50VO2 - 7.0) / 1.8 / 6.12)
	return &w
}

// QTcBazett returns QT/√RR in ms with RR derived from the heart rate.
func QTcBazett(qtMs, heartRate float64) *float64 {
	if heartRate <= 0 {
		return nil
	}
	rr := 60.0 / heartRate
	v := domain.Round1(qtMs / math.Sqrt(rr))
	return &v
}

// QTcFridericia returns QT/RR^(1/3) in ms with RR derived from the heart rate.
func QTcFridericia(qtMs, heartRate float64) *float64 {
	if heartRate <= 0 {
		return nil
	}
	rr := 60.0 / heartRate
	v := domain.Round1(qtMs / math.Cbrt(rr))
	return &v
}
