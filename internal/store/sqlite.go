package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cardiac-report-server/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite study store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanStudy scans a row into a StudyRecord.
func scanStudy(s scanner) (*StudyRecord, error) {
	rec := &StudyRecord{}
	var studyType, payload string

	err := s.Scan(
		&rec.ID, &rec.UUID, &rec.PatientID, &studyType,
		&rec.StudyDatetime, &rec.Source, &payload,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.StudyType = domain.StudyType(studyType)
	rec.Payload = json.RawMessage(payload)
	return rec, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS studies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT NOT NULL UNIQUE,
		patient_id TEXT NOT NULL,
		study_type TEXT NOT NULL,
		study_datetime DATETIME NOT NULL,
		source TEXT DEFAULT 'manual',
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_patient_id ON studies(patient_id);
	CREATE INDEX IF NOT EXISTS idx_study_type ON studies(study_type);
	CREATE INDEX IF NOT EXISTS idx_study_datetime ON studies(study_datetime);
	`

	_, err := db.Exec(schema)
	return err
}

const studyColumns = `id, uuid, patient_id, study_type, study_datetime, source, payload, created_at, updated_at`

// Save stores or updates a study record, keyed by UUID.
func (s *SQLiteStore) Save(ctx context.Context, rec *StudyRecord) error {
	now := time.Now()
	if rec.UUID == "" {
		rec.UUID = uuid.NewString()
	}
	if rec.StudyDatetime.IsZero() {
		rec.StudyDatetime = now
	}
	if rec.Source == "" {
		rec.Source = "manual"
	}

	var existingID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM studies WHERE uuid = ?", rec.UUID,
	).Scan(&existingID)

	if err == nil {
		rec.ID = existingID
		rec.UpdatedAt = now

		_, err = s.db.ExecContext(ctx, `
			UPDATE studies SET
				patient_id = ?,
				study_type = ?,
				study_datetime = ?,
				source = ?,
				payload = ?,
				updated_at = ?
			WHERE id = ?
		`,
			rec.PatientID,
			string(rec.StudyType),
			rec.StudyDatetime,
			rec.Source,
			string(rec.Payload),
			now,
			existingID,
		)
		return err
	}

	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing: %w", err)
	}

	rec.CreatedAt = now
	rec.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO studies (
			uuid, patient_id, study_type, study_datetime,
			source, payload, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.UUID,
		rec.PatientID,
		string(rec.StudyType),
		rec.StudyDatetime,
		rec.Source,
		string(rec.Payload),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	rec.ID = id

	return nil
}

// Get retrieves a study record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*StudyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+studyColumns+" FROM studies WHERE id = ? LIMIT 1", id)

	rec, err := scanStudy(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return rec, nil
}

// ListByPatient returns all studies for a patient, newest first.
func (s *SQLiteStore) ListByPatient(ctx context.Context, patientID string) ([]*StudyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+studyColumns+" FROM studies WHERE patient_id = ? ORDER BY study_datetime DESC",
		patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	return collectStudies(rows)
}

// List returns study records with pagination, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*StudyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+studyColumns+" FROM studies ORDER BY study_datetime DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	return collectStudies(rows)
}

func collectStudies(rows *sql.Rows) ([]*StudyRecord, error) {
	var result []*StudyRecord
	for rows.Next() {
		rec, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Count returns the total number of stored studies.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM studies").Scan(&count)
	return count, err
}

// Delete removes a study record by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM studies WHERE id = ?", id)
	return err
}

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000

// ExportJSON exports all studies to a JSON writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list studies: %w", err)
	}

	export := &StudyExport{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Count:      len(all),
		Studies:    all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// ImportJSON imports studies from a JSON reader.
func (s *SQLiteStore) ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error) {
	var export StudyExport
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, rec := range export.Studies {
		var existingID int64
		err := s.db.QueryRowContext(ctx,
			"SELECT id FROM studies WHERE uuid = ?", rec.UUID,
		).Scan(&existingID)
		if err == nil {
			skipped++
			continue
		}
		if err != sql.ErrNoRows {
			return imported, skipped, fmt.Errorf("failed to check existing: %w", err)
		}

		rec.ID = 0
		if err := s.Save(ctx, rec); err != nil {
			return imported, skipped, fmt.Errorf("failed to save: %w", err)
		}
		imported++
	}

	return imported, skipped, nil
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
