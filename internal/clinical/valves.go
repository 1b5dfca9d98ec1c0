package clinical

import (
	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/domain"
)

// RegurgMeasurements are the quantitative regurgitation parameters a valve
// grader can consume. Unused parameters stay nil; each grader only reads the
// criteria defined for its valve.
type RegurgMeasurements struct {
	EROA    *float64 `json:"eroa,omitempty"`     // cm²
	RegVol  *float64 `json:"regvol,omitempty"`   // mL
	RF      *float64 `json:"rf,omitempty"`       // %
	VCW     *float64 `json:"vcw,omitempty"`      // cm, tricuspid only
	DT      *float64 `json:"dt,omitempty"`       // ms, pulmonic jet deceleration time
	PHT     *float64 `json:"pht,omitempty"`      // ms, pulmonic pressure half-time
	PRIndex *float64 `json:"pr_index,omitempty"` // pulmonic only
}

// regurgCriterion grades one quantitative parameter on the 0..3 scale.
type regurgCriterion struct {
	name  string
	value func(m RegurgMeasurements) *float64
	grade func(v float64) domain.Severity
}

// ValveGrader grades regurgitation for one valve by taking the worst grade
// across its criteria, mirroring the integrative approach of the EACVI
// recommendations.
type ValveGrader struct {
	valve    string
	criteria []regurgCriterion
	labels   map[domain.Severity]string
	logger   *logrus.Logger
}

// Grade returns the overall severity and the valve-specific Dutch label.
// Missing parameters contribute nothing; with no parameters at all the
// result is SeverityNone ("Geen regurgitatie").
func (g *ValveGrader) Grade(m RegurgMeasurements) (domain.Severity, string) {
	severity := domain.SeverityNone
	for _, c := range g.criteria {
		v := c.value(m)
		if v == nil {
			continue
		}
		s := c.grade(*v)
		if s > severity {
			severity = s
		}
		if g.logger != nil {
			g.logger.WithFields(logrus.Fields{
				"valve":     g.valve,
				"criterion": c.name,
				"value":     *v,
				"grade":     int(s),
			}).Debug("Regurgitation criterion evaluated")
		}
	}
	return severity, g.labels[severity]
}

// Label returns the valve-specific Dutch label for a severity.
func (g *ValveGrader) Label(s domain.Severity) string {
	return g.labels[s]
}

func gradeEROA(v float64) domain.Severity {
	switch {
	case v >= 0.4:
		return domain.SeveritySevere
	case v >= 0.2:
		return domain.SeverityModerate
	default:
		return domain.SeverityMild
	}
}

func gradeRF(v float64) domain.Severity {
	switch {
	case v > 50:
		return domain.SeveritySevere
	case v >= 30:
		return domain.SeverityModerate
	default:
		return domain.SeverityMild
	}
}

func gradeRegVolAt(severeCutoff float64) func(v float64) domain.Severity {
	return func(v float64) domain.Severity {
		switch {
		case v >= severeCutoff:
			return domain.SeveritySevere
		case v >= 30:
			return domain.SeverityModerate
		default:
			return domain.SeverityMild
		}
	}
}

func regurgLabels(valve string) map[domain.Severity]string {
	return map[domain.Severity]string{
		domain.SeverityNone:     "Geen regurgitatie",
		domain.SeverityMild:     "Milde " + valve + " regurgitatie",
		domain.SeverityModerate: "Matige " + valve + " regurgitatie",
		domain.SeveritySevere:   "Ernstige " + valve + " regurgitatie",
	}
}

// NewMitralGrader builds the mitral regurgitation grader (EROA, RegVol, RF).
func NewMitralGrader(logger *logrus.Logger) *ValveGrader {
	return &ValveGrader{
		valve:  "mitralis",
		labels: regurgLabels("mitralis"),
		logger: logger,
		criteria: []regurgCriterion{
			{"eroa", func(m RegurgMeasurements) *float64 { return m.EROA }, gradeEROA},
			{"regvol", func(m RegurgMeasurements) *float64 { return m.RegVol }, gradeRegVolAt(60)},
			{"rf", func(m RegurgMeasurements) *float64 { return m.RF }, gradeRF},
		},
	}
}

// NewTricuspidGrader builds the tricuspid grader. The regurgitant volume
// cutoff for severe is lower than mitral (45 mL) and vena contracta width
// joins the criteria.
func NewTricuspidGrader(logger *logrus.Logger) *ValveGrader {
	return &ValveGrader{
		valve:  "tricuspidalis",
		labels: regurgLabels("tricuspidalis"),
		logger: logger,
		criteria: []regurgCriterion{
			{"eroa", func(m RegurgMeasurements) *float64 { return m.EROA }, gradeEROA},
			{"regvol", func(m RegurgMeasurements) *float64 { return m.RegVol }, gradeRegVolAt(45)},
			{"vcw", func(m RegurgMeasurements) *float64 { return m.VCW }, func(v float64) domain.Severity {
				switch {
				case v >= 0.7:
					return domain.SeveritySevere
				case v >= 0.3:
					return domain.SeverityModerate
				default:
					return domain.SeverityMild
				}
			}},
			{"rf", func(m RegurgMeasurements) *float64 { return m.RF }, gradeRF},
		},
	}
}

// NewPulmonicGrader builds the pulmonic grader. A short deceleration time or
// pressure half-time of the regurgitant jet and a low PR index all push the
// grade up.
func NewPulmonicGrader(logger *logrus.Logger) *ValveGrader {
	return &ValveGrader{
		valve:  "pulmonalis",
		labels: regurgLabels("pulmonalis"),
		logger: logger,
		criteria: []regurgCriterion{
			{"eroa", func(m RegurgMeasurements) *float64 { return m.EROA }, gradeEROA},
			{"regvol", func(m RegurgMeasurements) *float64 { return m.RegVol }, gradeRegVolAt(60)},
			{"rf", func(m RegurgMeasurements) *float64 { return m.RF }, gradeRF},
			{"dt", func(m RegurgMeasurements) *float64 { return m.DT }, func(v float64) domain.Severity {
				switch {
				case v < 260:
					return domain.SeveritySevere
				case v < 400:
					return domain.SeverityModerate
				default:
					return domain.SeverityMild
				}
			}},
			{"pht", func(m RegurgMeasurements) *float64 { return m.PHT }, func(v float64) domain.Severity {
				switch {
				case v < 100:
					return domain.SeveritySevere
				case v < 200:
					return domain.SeverityModerate
				default:
					return domain.SeverityMild
				}
			}},
			{"pr_index", func(m RegurgMeasurements) *float64 { return m.PRIndex }, func(v float64) domain.Severity {
				switch {
				case v < 0.77:
					return domain.SeveritySevere
				case v < 0.9:
					return domain.SeverityModerate
				default:
					return domain.SeverityMild
				}
			}},
		},
	}
}

// MitralRegurgSeverity is a convenience wrapper for the mitral grader used
// by the guideline engine.
func MitralRegurgSeverity(eroa, regvol, rf *float64) domain.Severity {
	sev, _ := NewMitralGrader(nil).Grade(RegurgMeasurements{EROA: eroa, RegVol: regvol, RF: rf})
	return sev
}
