package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StudySnapshot bundles the measurement contexts of one patient encounter so
// they can be stored, re-rendered or shared. Any combination of studies may
// be present; ReportTexts carries the composed report strings keyed by the
// Report* constants.
type StudySnapshot struct {
	Patient     *PatientContext   `json:"patient,omitempty"`
	Echo        *EchoRecord       `json:"echo,omitempty"`
	Fietstest   *CycloRecord      `json:"fietstest,omitempty"`
	CIED        *CIEDRecord       `json:"cied,omitempty"`
	ECG         *ECGRecord        `json:"ecg,omitempty"`
	Holter      *HolterRecord     `json:"holter,omitempty"`
	ReportTexts map[string]string `json:"report_texts,omitempty"`
}

// ToJSON encodes the snapshot as indented JSON.
func (s *StudySnapshot) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// SnapshotFromJSON decodes a snapshot and normalizes the per-study patient
// contexts: a study without its own patient inherits the top-level one, so
// downstream code can rely on record.Patient being set whenever the snapshot
// carried any patient at all.
func SnapshotFromJSON(data []byte) (*StudySnapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &StudySnapshot{}, nil
	}
	var snap StudySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	snap.normalizePatients()
	return &snap, nil
}

func (s *StudySnapshot) normalizePatients() {
	if s.Patient == nil {
		return
	}
	if s.Echo != nil && s.Echo.Patient == nil {
		s.Echo.Patient = s.Patient
	}
	if s.Fietstest != nil && s.Fietstest.Patient == nil {
		s.Fietstest.Patient = s.Patient
	}
	if s.CIED != nil && s.CIED.Patient == nil {
		s.CIED.Patient = s.Patient
	}
	if s.ECG != nil && s.ECG.Patient == nil {
		s.ECG.Patient = s.Patient
	}
	if s.Holter != nil && s.Holter.Patient == nil {
		s.Holter.Patient = s.Patient
	}
}

// StudyTypes lists the study records present in the snapshot.
func (s *StudySnapshot) StudyTypes() []StudyType {
	var types []StudyType
	if s.Echo != nil {
		types = append(types, StudyEcho)
	}
	if s.Fietstest != nil {
		types = append(types, StudyFietstest)
	}
	if s.ECG != nil {
		types = append(types, StudyECG)
	}
	if s.Holter != nil {
		types = append(types, StudyHolter)
	}
	if s.CIED != nil {
		types = append(types, StudyCIED)
	}
	return types
}

// SetReportText stores a composed report under the given key, allocating the
// map lazily. Empty texts are ignored.
func (s *StudySnapshot) SetReportText(key, text string) {
	if text == "" {
		return
	}
	if s.ReportTexts == nil {
		s.ReportTexts = make(map[string]string)
	}
	s.ReportTexts[key] = text
}
