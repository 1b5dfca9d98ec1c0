// Package domain contains the core entities shared by the cardiac report
// modules: patient context, per-study measurement records and the snapshot
// bundle that is stored and exchanged with the front end.
//
// All classification labels and report phrasing are Dutch, matching the
// clinical letters the reports are embedded in.
package domain

import "errors"

// Sex is the patient sex as used by the sex-specific reference tables.
type Sex string

const (
	Male   Sex = "Man"
	Female Sex = "Vrouw"
)

// IsValid reports whether the sex is one of the supported values.
// Reference tables only exist for these two categories.
func (s Sex) IsValid() bool {
	switch s {
	case Male, Female:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sex.
func (s Sex) String() string {
	return string(s)
}

// StudyType identifies the kind of investigation a snapshot belongs to.
type StudyType string

const (
	StudyEcho      StudyType = "echo"
	StudyFietstest StudyType = "fietstest"
	StudyECG       StudyType = "ecg"
	StudyHolter    StudyType = "holter"
	StudyCIED      StudyType = "cied"
	StudyBrief     StudyType = "brief"
)

// IsValid reports whether the study type is known.
func (t StudyType) IsValid() bool {
	switch t {
	case StudyEcho, StudyFietstest, StudyECG, StudyHolter, StudyCIED, StudyBrief:
		return true
	default:
		return false
	}
}

// String returns the string representation of the study type.
func (t StudyType) String() string {
	return string(t)
}

// Severity is the ordinal severity grade shared by the valve graders.
// Higher is worse; the graders take the maximum across criteria.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

// Validation errors for measurement integrity.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSex       = errors.New("invalid patient sex")
	ErrInvalidStudyType = errors.New("invalid study type")
	ErrMissingPatient   = errors.New("patient context is required")
)

// Report text keys used in StudySnapshot.ReportTexts. The brief letter
// composer collects the full_* keys in its investigation order.
const (
	ReportBriefEcho      = "brief_echo"
	ReportFullEcho       = "full_echo"
	ReportBriefECG       = "brief_ecg"
	ReportFullECG        = "full_ecg"
	ReportBriefFietstest = "brief_fietstest"
	ReportFullFietstest  = "full_fietstest"
	ReportBriefHolter    = "brief_holter"
	ReportFullHolter     = "full_holter"
	ReportFullCIED       = "full_cied"
	ReportBriefLetter    = "brief_letter"
)
