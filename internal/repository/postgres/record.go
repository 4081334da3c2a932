package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/repository"
	apperrors "github.com/medilink/records-api/pkg/errors"
)

// Postgres class 23505, unique_violation.
const uniqueViolation = "23505"

type recordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *model.PatientRecord) error {
	query := `
		INSERT INTO patient_records
			(id, unique_id, full_name, surgery_details, medicines, diagnosis, notes, hospital_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UniqueID,
		record.FullName,
		record.SurgeryDetails,
		record.Medicines,
		record.Diagnosis,
		record.Notes,
		record.HospitalID,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperrors.NewDuplicate("patient record", "unique ID", err)
		}
		return fmt.Errorf("failed to create patient record: %w", err)
	}
	return nil
}

func (r *recordRepository) Get(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error) {
	query := `SELECT * FROM patient_records WHERE id = $1`
	var record model.PatientRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("patient record", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient record: %w", err)
	}
	return &record, nil
}

func (r *recordRepository) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.PatientRecord, error) {
	query := `
		SELECT * FROM patient_records
		WHERE hospital_id = $1
		ORDER BY created_at DESC
	`
	records := []*model.PatientRecord{}
	if err := r.db.SelectContext(ctx, &records, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list patient records: %w", err)
	}
	return records, nil
}

func (r *recordRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*model.SearchResult, error) {
	query := `
		SELECT r.*,
		       COALESCE(NULLIF(p.hospital_name, ''), p.full_name) AS hospital_name
		FROM patient_records r
		JOIN profiles p ON p.user_id = r.hospital_id
		WHERE r.unique_id = $1
	`
	var result model.SearchResult
	err := r.db.GetContext(ctx, &result, query, uniqueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("patient record", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search patient record: %w", err)
	}
	return &result, nil
}
