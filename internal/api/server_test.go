package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiac-report-server/internal/domain"
	"github.com/cardiac-report-server/internal/report"
	"github.com/cardiac-report-server/internal/store"
)

func newTestServer(t *testing.T, token string) *Server {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "studies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &domain.Config{
		Auth: domain.AuthConfig{APIToken: token},
		Limits: domain.LimitsConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			ReportCacheSize:   16,
		},
		Logging: domain.LoggingConfig{Level: "error"},
	}

	srv, err := NewServer(cfg, st, report.NewComposer(logger), logger)
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthEndpoint_DatabaseUp(t *testing.T) {
	srv := newTestServer(t, "")
	srv.SetDatabaseCheck(func(ctx context.Context) error { return nil })

	w := doRequest(srv, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	srv := newTestServer(t, "")
	srv.SetDatabaseCheck(func(ctx context.Context) error { return errors.New("connection refused") })

	w := doRequest(srv, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","database":"down"}`, w.Body.String())
}

func TestSaveSnapshot(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{
		"patient": {"sex": "Man", "patient_id": "P-001"},
		"study_datetime": "2024-03-12T10:30:00Z",
		"source": "pdf",
		"payload": {"patient": {"sex": "Man"}, "echo": {"lvef": 55}}
	}`

	w := doRequest(srv, http.MethodPost, "/api/studies/echo/from-snapshot", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Greater(t, resp["id"].(float64), 0.0)
}

func TestSaveSnapshot_Validation(t *testing.T) {
	srv := newTestServer(t, "")

	tests := []struct {
		name string
		path string
		body string
	}{
		{
			name: "unknown study type",
			path: "/api/studies/mri/from-snapshot",
			body: `{"patient": {"sex": "Man", "patient_id": "P-001"}, "payload": {}}`,
		},
		{
			name: "missing patient id",
			path: "/api/studies/echo/from-snapshot",
			body: `{"patient": {"sex": "Man"}, "payload": {}}`,
		},
		{
			name: "missing payload",
			path: "/api/studies/echo/from-snapshot",
			body: `{"patient": {"sex": "Man", "patient_id": "P-001"}}`,
		},
		{
			name: "bad study datetime",
			path: "/api/studies/echo/from-snapshot",
			body: `{"patient": {"sex": "Man", "patient_id": "P-001"}, "study_datetime": "12-03-2024", "payload": {}}`,
		},
		{
			name: "malformed body",
			path: "/api/studies/echo/from-snapshot",
			body: `{not json`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(srv, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetStudy(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{
		"patient": {"sex": "Vrouw", "patient_id": "P-002"},
		"payload": {"patient": {"sex": "Vrouw"}}
	}`
	w := doRequest(srv, http.MethodPost, "/api/studies/ecg/from-snapshot", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeJSON(t, w)["id"].(float64)

	w = doRequest(srv, http.MethodGet, studyPath(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, "P-002", resp["patient_id"])
	assert.Equal(t, "ecg", resp["study_type"])
}

func TestGetStudy_NotFound(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/api/studies/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStudy_InvalidID(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/api/studies/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteStudy(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{
		"patient": {"sex": "Man", "patient_id": "P-003"},
		"payload": {}
	}`
	w := doRequest(srv, http.MethodPost, "/api/studies/holter/from-snapshot", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeJSON(t, w)["id"].(float64)

	w = doRequest(srv, http.MethodDelete, studyPath(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(srv, http.MethodGet, studyPath(id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientStudies(t *testing.T) {
	srv := newTestServer(t, "")

	// No records yet: an empty array, not null.
	w := doRequest(srv, http.MethodGet, "/api/patients/P-010/studies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	for _, st := range []string{"echo", "ecg"} {
		body := `{
			"patient": {"sex": "Man", "patient_id": "P-010"},
			"payload": {}
		}`
		w := doRequest(srv, http.MethodPost, "/api/studies/"+st+"/from-snapshot", body, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doRequest(srv, http.MethodGet, "/api/patients/P-010/studies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 2)
}

func TestComposeReport(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{
		"patient": {"sex": "Man", "patient_id": "P-001"},
		"echo": {"lvef": 58}
	}`

	w := doRequest(srv, http.MethodPost, "/api/reports/echo", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON(t, w)
	assert.Equal(t, false, resp["cached"])

	texts := resp["report_texts"].(map[string]interface{})
	assert.Contains(t, texts["full_echo"], "LVEF 58")
	assert.Contains(t, texts, "brief_echo")
}

func TestComposeReport_Cached(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{"patient": {"sex": "Vrouw"}, "ecg": {"vent_rate": 72}}`

	w := doRequest(srv, http.MethodPost, "/api/reports/ecg", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeJSON(t, w)
	assert.Equal(t, false, first["cached"])

	w = doRequest(srv, http.MethodPost, "/api/reports/ecg", body, nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := decodeJSON(t, w)
	assert.Equal(t, true, second["cached"])
	assert.Equal(t, first["report_texts"], second["report_texts"])
}

func TestComposeReport_InvalidType(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodPost, "/api/reports/mri", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComposeReport_InvalidSnapshot(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodPost, "/api/reports/echo", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComposeLetter(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{
		"voorgeschiedenis": "Arteriële hypertensie.",
		"anamnese": "Geen klachten.",
		"thuismedicatie": "Bisoprolol 2.5 mg",
		"clinical_exam": {},
		"bespreking": "Stabiel beleid."
	}`

	w := doRequest(srv, http.MethodPost, "/api/letter", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	letter := decodeJSON(t, w)["letter"].(string)
	assert.Contains(t, letter, "Arteriële hypertensie.")
	assert.Contains(t, letter, "Bisoprolol 2.5 mg")
	assert.Contains(t, letter, "Dr. A. Ballet")
}

func TestListScenarios(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/api/scenarios", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var scenarios []report.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scenarios))
	assert.NotEmpty(t, scenarios)

	var names []string
	for _, sc := range scenarios {
		names = append(names, sc.Name)
	}
	assert.Contains(t, names, "Atriumflutter")
}

func TestGetScenario(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/api/scenarios/Atriumflutter", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sc report.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sc))
	assert.Equal(t, "Atriumflutter", sc.Name)
	assert.NotEmpty(t, sc.Plan)
}

func TestGetScenario_Unknown(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/api/scenarios/Onbekend", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportImport(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{
		"patient": {"sex": "Man", "patient_id": "P-020"},
		"payload": {"patient": {"sex": "Man"}}
	}`
	w := doRequest(srv, http.MethodPost, "/api/studies/echo/from-snapshot", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(srv, http.MethodGet, "/api/export", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.String()
	assert.Contains(t, exported, `"version": "1.0"`)
	assert.Contains(t, exported, "P-020")

	// Importing the export into a fresh server adds the record once.
	other := newTestServer(t, "")
	w = doRequest(other, http.MethodPost, "/api/import", exported, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)
	assert.Equal(t, 1.0, resp["imported"])
	assert.Equal(t, 0.0, resp["skipped"])

	// Importing again skips the existing UUID.
	w = doRequest(other, http.MethodPost, "/api/import", exported, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeJSON(t, w)
	assert.Equal(t, 0.0, resp["imported"])
	assert.Equal(t, 1.0, resp["skipped"])
}

func TestImport_Invalid(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodPost, "/api/import", "not json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, "secret-token")

	// Health stays open.
	w := doRequest(srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// API requires the bearer token.
	w = doRequest(srv, http.MethodGet, "/api/scenarios", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(srv, http.MethodGet, "/api/scenarios", "", map[string]string{
		"Authorization": "Bearer wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(srv, http.MethodGet, "/api/scenarios", "", map[string]string{
		"Authorization": "Bearer secret-token",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doRequest(srv, http.MethodGet, "/health", "", map[string]string{
		"X-Request-ID": "req-42",
	})
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func studyPath(id float64) string {
	return fmt.Sprintf("/api/studies/%d", int64(id))
}

func TestIngestText_ECG(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{"text": "Geslacht: v\nVent frequentie: 72\nPR: 160\nQRS: 100\nQT: 400\nQTc: 430"}`
	w := doRequest(srv, http.MethodPost, "/api/ingest/ecg", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)

	record, ok := resp["record"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 72, record["vent_rate"])
	assert.EqualValues(t, 160, record["pr_interval_ms"])

	patient, ok := record["patient"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Vrouw", patient["sex"])
	assert.Empty(t, resp["warnings"])
}

func TestIngestText_Fietstest(t *testing.T) {
	srv := newTestServer(t, "")

	body := `{"text": "Startbelasting: 50 W\nMaximale belasting: 150 W\nDuur: 45\nMaximale hartslag: 160"}`
	w := doRequest(srv, http.MethodPost, "/api/ingest/fietstest", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeJSON(t, w)

	record, ok := resp["record"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 150, record["max_watt"])
	assert.EqualValues(t, 160, record["max_hr"])
}

func TestIngestText_Validation(t *testing.T) {
	srv := newTestServer(t, "")

	w := doRequest(srv, http.MethodPost, "/api/ingest/echo", `{"text": "LVEF 58%"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(srv, http.MethodPost, "/api/ingest/ecg", `{"text": ""}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
