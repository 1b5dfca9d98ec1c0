// Package store persists study snapshots so earlier investigations can be
// pulled back into a later consult letter.
package store

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/cardiac-report-server/internal/domain"
)

// StudyRecord is one saved investigation for a patient. Payload holds the
// full snapshot JSON so the measurement shape can evolve without schema
// migrations per study type.
type StudyRecord struct {
	ID            int64            `json:"id,omitempty"`
	UUID          string           `json:"uuid"`
	PatientID     string           `json:"patient_id"`
	StudyType     domain.StudyType `json:"study_type"`
	StudyDatetime time.Time        `json:"study_datetime"`
	Source        string           `json:"source,omitempty"` // "manual" or "pdf"
	Payload       json.RawMessage  `json:"payload"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Snapshot decodes the payload back into a study snapshot.
func (r *StudyRecord) Snapshot() (*domain.StudySnapshot, error) {
	return domain.SnapshotFromJSON(r.Payload)
}

// Store defines the persistence operations for study records.
type Store interface {
	// Save stores or updates a study record. A record with the same UUID
	// is updated in place; a record without a UUID gets one assigned.
	Save(ctx context.Context, rec *StudyRecord) error

	// Get retrieves a study record by ID. Returns domain.ErrNotFound when
	// no record has that ID.
	Get(ctx context.Context, id int64) (*StudyRecord, error)

	// ListByPatient returns all studies for a patient, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]*StudyRecord, error)

	// List returns study records with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*StudyRecord, error)

	// Count returns the total number of stored studies.
	Count(ctx context.Context) (int64, error)

	// Delete removes a study record by ID.
	Delete(ctx context.Context, id int64) error

	// ExportJSON exports all studies to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports studies from a JSON reader. Records whose UUID is
	// already present are skipped. Returns imported and skipped counts.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// StudyExport is the JSON export format.
type StudyExport struct {
	Version    string         `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Count      int            `json:"count"`
	Studies    []*StudyRecord `json:"studies"`
}
