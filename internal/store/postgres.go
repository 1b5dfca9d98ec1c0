package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/cardiac-report-server/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL study store.
// It expects the database and schema to already exist (created via migrations).
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL creates a new PostgreSQL study store from a connection URL.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Save stores or updates a study record, keyed by UUID.
func (s *PostgresStore) Save(ctx context.Context, rec *StudyRecord) error {
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

	query := `
		INSERT INTO studies (
			uuid, patient_id, study_type, study_datetime,
			source, payload, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uuid) DO UPDATE SET
			patient_id = EXCLUDED.patient_id,
			study_type = EXCLUDED.study_type,
			study_datetime = EXCLUDED.study_datetime,
			source = EXCLUDED.source,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.UUID,
		rec.PatientID,
		string(rec.StudyType),
		rec.StudyDatetime,
		rec.Source,
		string(rec.Payload),
		now,
		now,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save study: %w", err)
	}

	rec.UpdatedAt = now
	return nil
}

// Get retrieves a study record by ID.
func (s *PostgresStore) Get(ctx context.Context, id int64) (*StudyRecord, error) {
	query := `
		SELECT id, uuid, patient_id, study_type, study_datetime,
			source, payload, created_at, updated_at
		FROM studies
		WHERE id = $1
		LIMIT 1
	`

	rec, err := scanStudy(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return rec, nil
}

// ListByPatient returns all studies for a patient, newest first.
func (s *PostgresStore) ListByPatient(ctx context.Context, patientID string) ([]*StudyRecord, error) {
	query := `
		SELECT id, uuid, patient_id, study_type, study_datetime,
			source, payload, created_at, updated_at
		FROM studies
		WHERE patient_id = $1
		ORDER BY study_datetime DESC
	`

	rows, err := s.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	return collectStudies(rows)
}

// List returns study records with pagination, newest first.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*StudyRecord, error) {
	query := `
		SELECT id, uuid, patient_id, study_type, study_datetime,
			source, payload, created_at, updated_at
		FROM studies
		ORDER BY study_datetime DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	return collectStudies(rows)
}

// Count returns the total number of stored studies.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM studies").Scan(&count)
	return count, err
}

// Delete removes a study record by ID.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM studies WHERE id = $1", id)
	return err
}

// ExportJSON exports all studies to a JSON writer.
func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
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
func (s *PostgresStore) ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error) {
	var export StudyExport
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, rec := range export.Studies {
		var existingID int64
		err := s.db.QueryRowContext(ctx,
			"SELECT id FROM studies WHERE uuid = $1", rec.UUID,
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
