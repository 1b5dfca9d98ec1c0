package domain

import "math"

// PatientContext is the basic patient info that every study module depends on.
// Length is in cm, weight in kg, BSA in m².
type PatientContext struct {
	Sex         Sex      `json:"sex"`
	PatientID   *string  `json:"patient_id,omitempty"`
	FullName    *string  `json:"full_name,omitempty"`
	DateOfBirth *string  `json:"date_of_birth,omitempty"`
	Age         *float64 `json:"leeftijd,omitempty"`
	BSA         *float64 `json:"bsa,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Length      *float64 `json:"length,omitempty"`
}

// Validate checks the fields needed by the sex-specific reference tables.
func (p *PatientContext) Validate() error {
	if p == nil {
		return ErrMissingPatient
	}
	if !p.Sex.IsValid() {
		return ErrInvalidSex
	}
	return nil
}

// BodySurfaceArea returns the Mosteller BSA in m², preferring a stored value.
// Returns 0 when length or weight is missing or non-positive.
func (p *PatientContext) BodySurfaceArea() float64 {
	if p == nil {
		return 0
	}
	if p.BSA != nil && *p.BSA > 0 {
		return *p.BSA
	}
	if p.Length == nil || p.Weight == nil || *p.Length <= 0 || *p.Weight <= 0 {
		return 0
	}
	return math.Sqrt(*p.Length * *p.Weight / 3600.0)
}

// BMI returns weight/length² rounded to one decimal, or nil when the
// inputs are missing.
func (p *PatientContext) BMI() *float64 {
	if p == nil || p.Weight == nil || p.Length == nil || *p.Length <= 0 {
		return nil
	}
	m := *p.Length / 100.0
	v := Round1(*p.Weight / (m * m))
	return &v
}
