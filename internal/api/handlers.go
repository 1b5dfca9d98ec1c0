package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardiac-report-server/internal/domain"
	"github.com/cardiac-report-server/internal/ingest"
	"github.com/cardiac-report-server/internal/report"
	"github.com/cardiac-report-server/internal/store"
)

// saveSnapshotRequest is the body of POST /api/studies/:type/from-snapshot.
type saveSnapshotRequest struct {
	Patient       *domain.PatientContext `json:"patient"`
	StudyType     string                 `json:"study_type"`
	StudyDatetime string                 `json:"study_datetime"`
	Source        string                 `json:"source"`
	Payload       json.RawMessage        `json:"payload"`
}

// handleSaveSnapshot stores one study snapshot and returns its ID.
func (s *Server) handleSaveSnapshot(c *gin.Context) {
	studyType := domain.StudyType(c.Param("type"))
	if !studyType.IsValid() {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "unknown study type", c.Param("type"), requestID(c)))
		return
	}

	var req saveSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "invalid request body", err.Error(), requestID(c)))
		return
	}
	if req.Patient == nil || req.Patient.PatientID == nil || *req.Patient.PatientID == "" {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrValidation, "patient with patient_id is required", "", requestID(c)))
		return
	}
	if len(req.Payload) == 0 {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrValidation, "payload is required", "", requestID(c)))
		return
	}

	studyDatetime := time.Now()
	if req.StudyDatetime != "" {
		parsed, err := time.Parse(time.RFC3339, req.StudyDatetime)
		if err != nil {
			c.JSON(http.StatusBadRequest,
				domain.NewAPIError(domain.ErrValidation, "study_datetime must be RFC 3339", req.StudyDatetime, requestID(c)))
			return
		}
		studyDatetime = parsed
	}

	rec := &store.StudyRecord{
		PatientID:     *req.Patient.PatientID,
		StudyType:     studyType,
		StudyDatetime: studyDatetime,
		Source:        req.Source,
		Payload:       req.Payload,
	}
	if err := s.store.Save(c.Request.Context(), rec); err != nil {
		s.log.WithError(err).Error("Failed to save study")
		c.JSON(http.StatusInternalServerError,
			domain.NewAPIError(domain.ErrDatabaseError, "failed to save study", "", requestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": rec.ID})
}

// handleGetStudy returns one stored study by ID.
func (s *Server) handleGetStudy(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "invalid study id", c.Param("id"), requestID(c)))
		return
	}

	rec, err := s.store.Get(c.Request.Context(), id)
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound,
			domain.NewAPIError(domain.ErrInvalidInput, "study not found", "", requestID(c)))
		return
	}
	if err != nil {
		s.log.WithError(err).Error("Failed to load study")
		c.JSON(http.StatusInternalServerError,
			domain.NewAPIError(domain.ErrDatabaseError, "failed to load study", "", requestID(c)))
		return
	}

	c.JSON(http.StatusOK, rec)
}

// handleDeleteStudy removes one stored study by ID.
func (s *Server) handleDeleteStudy(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "invalid study id", c.Param("id"), requestID(c)))
		return
	}

	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.log.WithError(err).Error("Failed to delete study")
		c.JSON(http.StatusInternalServerError,
			domain.NewAPIError(domain.ErrDatabaseError, "failed to delete study", "", requestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handlePatientStudies lists all stored studies for one patient.
func (s *Server) handlePatientStudies(c *gin.Context) {
	patientID := c.Param("id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "patient id is required", "", requestID(c)))
		return
	}

	records, err := s.store.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		s.log.WithError(err).Error("Failed to list patient studies")
		c.JSON(http.StatusInternalServerError,
			domain.NewAPIError(domain.ErrDatabaseError, "failed to list studies", "", requestID(c)))
		return
	}
	if records == nil {
		records = []*store.StudyRecord{}
	}

	c.JSON(http.StatusOK, records)
}

// ingestRequest is the body of POST /api/ingest/:type.
type ingestRequest struct {
	Text string `json:"text"`
}

// handleIngestText extracts a structured record from pasted report text.
// Only the study types with a text extractor are accepted.
func (s *Server) handleIngestText(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "invalid request body", err.Error(), requestID(c)))
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrValidation, "text is required", "", requestID(c)))
		return
	}

	switch domain.StudyType(c.Param("type")) {
	case domain.StudyECG:
		patient, rec, warnings := ingest.ParseECGText(req.Text)
		c.JSON(http.StatusOK, gin.H{"patient": patient, "record": rec, "warnings": warnings})
	case domain.StudyFietstest:
		patient, rec, warnings := ingest.ParseCycloText(req.Text)
		c.JSON(http.StatusOK, gin.H{"patient": patient, "record": rec, "warnings": warnings})
	default:
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "no text extractor for study type", c.Param("type"), requestID(c)))
	}
}

// handleComposeReport composes the report texts for one study snapshot.
// Results are cached by snapshot content so repeated compositions of the
// same measurements are served without re-deriving anything.
func (s *Server) handleComposeReport(c *gin.Context) {
	studyType := domain.StudyType(c.Param("type"))
	if !studyType.IsValid() {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "unknown study type", c.Param("type"), requestID(c)))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "failed to read body", err.Error(), requestID(c)))
		return
	}

	key := reportCacheKey(studyType, body)
	if texts, ok := s.reportCache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"report_texts": texts, "cached": true})
		return
	}

	snap, err := domain.SnapshotFromJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "invalid snapshot", err.Error(), requestID(c)))
		return
	}

	s.composer.FillReports(snap)
	if snap.ReportTexts == nil {
		snap.ReportTexts = map[string]string{}
	}

	s.reportCache.Add(key, snap.ReportTexts)
	c.JSON(http.StatusOK, gin.H{"report_texts": snap.ReportTexts, "cached": false})
}

// handleComposeLetter renders the consult letter from its sections.
func (s *Server) handleComposeLetter(c *gin.Context) {
	var in report.LetterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "invalid letter input", err.Error(), requestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"letter": s.composer.Letter.Compose(in)})
}

// handleListScenarios returns all clinical scenarios.
func (s *Server) handleListScenarios(c *gin.Context) {
	names := report.ScenarioNames()
	scenarios := make([]report.Scenario, 0, len(names))
	for _, name := range names {
		if sc, ok := report.ScenarioByName(name); ok {
			scenarios = append(scenarios, sc)
		}
	}
	c.JSON(http.StatusOK, scenarios)
}

// handleGetScenario returns one clinical scenario by name.
func (s *Server) handleGetScenario(c *gin.Context) {
	sc, ok := report.ScenarioByName(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound,
			domain.NewAPIError(domain.ErrInvalidInput, "unknown scenario", c.Param("name"), requestID(c)))
		return
	}
	c.JSON(http.StatusOK, sc)
}

// handleExport streams all stored studies as JSON.
func (s *Server) handleExport(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	if err := s.store.ExportJSON(c.Request.Context(), c.Writer); err != nil {
		s.log.WithError(err).Error("Failed to export studies")
		c.JSON(http.StatusInternalServerError,
			domain.NewAPIError(domain.ErrDatabaseError, "failed to export studies", "", requestID(c)))
	}
}

// handleImport loads studies from a JSON export.
func (s *Server) handleImport(c *gin.Context) {
	imported, skipped, err := s.store.ImportJSON(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			domain.NewAPIError(domain.ErrInvalidInput, "failed to import studies", err.Error(), requestID(c)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

func reportCacheKey(studyType domain.StudyType, body []byte) string {
	h := sha256.New()
	h.Write([]byte(studyType))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
