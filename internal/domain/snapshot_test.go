package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	snap := &StudySnapshot{
		Patient: &PatientContext{Sex: Female, Age: Float(63)},
		Echo: &EchoRecord{
			Patient: &PatientContext{Sex: Female},
		},
		ECG: &ECGRecord{},
	}
	snap.SetReportText(ReportFullEcho, "verslag")

	data, err := snap.ToJSON()
	require.NoError(t, err)

	decoded, err := SnapshotFromJSON(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.Patient)
	assert.Equal(t, Female, decoded.Patient.Sex)
	assert.Equal(t, "verslag", decoded.ReportTexts[ReportFullEcho])
	assert.Equal(t, []StudyType{StudyEcho, StudyECG}, decoded.StudyTypes())
}

func TestSnapshotFromJSONInheritsPatient(t *testing.T) {
	data := []byte(`{
		"patient": {"sex": "Man", "leeftijd": 58},
		"ecg": {"vent_rate": 72},
		"echo": {"patient": {"sex": "Vrouw"}}
	}`)

	snap, err := SnapshotFromJSON(data)
	require.NoError(t, err)

	// The ECG had no patient of its own and inherits the top-level one
	require.NotNil(t, snap.ECG.Patient)
	assert.Equal(t, Male, snap.ECG.Patient.Sex)

	// A study with its own patient keeps it
	assert.Equal(t, Female, snap.Echo.Patient.Sex)
}

func TestSnapshotFromJSONEmpty(t *testing.T) {
	snap, err := SnapshotFromJSON([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, snap.StudyTypes())

	_, err = SnapshotFromJSON([]byte("{not json"))
	assert.Error(t, err)
}

func TestSetReportText(t *testing.T) {
	snap := &StudySnapshot{}
	snap.SetReportText(ReportFullECG, "")
	assert.Nil(t, snap.ReportTexts, "Empty texts are not stored")

	snap.SetReportText(ReportFullECG, "ecg tekst")
	assert.Equal(t, "ecg tekst", snap.ReportTexts[ReportFullECG])
}
