package report

import (
	"github.com/sirupsen/logrus"

	"github.com/cardiac-report-server/internal/domain"
)

// Composer bundles the per-study composers behind one entry point.
type Composer struct {
	log    *logrus.Logger
	Echo   *EchoComposer
	Cyclo  *CycloComposer
	ECG    *ECGComposer
	Holter *HolterComposer
	CIED   *CIEDComposer
	Letter *LetterComposer
	Recs   *RecommendationEngine
}

// NewComposer wires all study composers on a shared logger.
func NewComposer(logger *logrus.Logger) *Composer {
	return &Composer{
		log:    logger,
		Echo:   NewEchoComposer(logger),
		Cyclo:  NewCycloComposer(logger),
		ECG:    NewECGComposer(logger),
		Holter: NewHolterComposer(logger),
		CIED:   NewCIEDComposer(logger),
		Letter: NewLetterComposer(logger),
		Recs:   NewRecommendationEngine(logger),
	}
}

// FillReports composes the report text for every study present on the
// snapshot and stores it under the matching report text key. Existing texts
// are overwritten so the snapshot always reflects its current measurements.
func (c *Composer) FillReports(snap *domain.StudySnapshot) {
	if snap == nil {
		return
	}
	if snap.Echo != nil {
		c.Echo.Enrich(snap.Echo)
		snap.SetReportText(domain.ReportFullEcho, c.Echo.Compose(snap.Echo))
		snap.SetReportText(domain.ReportBriefEcho, c.Echo.Brief(snap.Echo))
	}
	if snap.Fietstest != nil {
		m := c.Cyclo.Metrics(snap.Fietstest)
		snap.SetReportText(domain.ReportFullFietstest, c.Cyclo.Compose(snap.Fietstest, m))
		snap.SetReportText(domain.ReportBriefFietstest, c.Cyclo.Brief(snap.Fietstest, m))
	}
	if snap.ECG != nil {
		m := c.ECG.Metrics(snap.ECG)
		snap.SetReportText(domain.ReportFullECG, c.ECG.Compose(snap.ECG, m))
		snap.SetReportText(domain.ReportBriefECG, c.ECG.Brief(snap.ECG, m))
	}
	if snap.Holter != nil {
		m := c.Holter.Metrics(snap.Holter)
		snap.SetReportText(domain.ReportFullHolter, c.Holter.Compose(snap.Holter, m))
		snap.SetReportText(domain.ReportBriefHolter, c.Holter.Brief(snap.Holter, m))
	}
	if snap.CIED != nil {
		c.CIED.Enrich(snap.CIED)
		m := c.CIED.Metrics(snap.CIED)
		snap.SetReportText(domain.ReportFullCIED, c.CIED.Compose(snap.CIED, m))
	}
}
