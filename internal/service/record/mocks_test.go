package record

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/repository"
	apperrors "github.com/medilink/records-api/pkg/errors"
)

// Compile-time check that the mock satisfies the repository contract.
var _ repository.RecordRepository = (*mockRecordRepository)(nil)

// mockRecordRepository is a function-field mock. Fields left nil fall back
// to the in-memory store so round-trip tests read what they wrote.
type mockRecordRepository struct {
	CreateFunc         func(ctx context.Context, record *model.PatientRecord) error
	GetFunc            func(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error)
	ListByHospitalFunc func(ctx context.Context, hospitalID uuid.UUID) ([]*model.PatientRecord, error)
	GetByUniqueIDFunc  func(ctx context.Context, uniqueID string) (*model.SearchResult, error)

	stored       []*model.PatientRecord
	hospitalName string
}

func newMockRepo() *mockRecordRepository {
	return &mockRecordRepository{hospitalName: "General Hospital"}
}

func (m *mockRecordRepository) Create(ctx context.Context, record *model.PatientRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	for _, r := range m.stored {
		if r.UniqueID == record.UniqueID {
			return apperrors.NewDuplicate("patient record", "unique ID", errors.New("unique_violation"))
		}
	}
	// The store assigns timestamps on insert.
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	clone := *record
	m.stored = append([]*model.PatientRecord{&clone}, m.stored...)
	return nil
}

func (m *mockRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	for _, r := range m.stored {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFound("patient record", nil)
}

func (m *mockRecordRepository) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.PatientRecord, error) {
	if m.ListByHospitalFunc != nil {
		return m.ListByHospitalFunc(ctx, hospitalID)
	}
	// stored is already newest-first
	out := []*model.PatientRecord{}
	for _, r := range m.stored {
		if r.HospitalID == hospitalID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRecordRepository) GetByUniqueID(ctx context.Context, uniqueID string) (*model.SearchResult, error) {
	if m.GetByUniqueIDFunc != nil {
		return m.GetByUniqueIDFunc(ctx, uniqueID)
	}
	for _, r := range m.stored {
		if r.UniqueID == uniqueID {
			return &model.SearchResult{PatientRecord: *r, HospitalName: m.hospitalName}, nil
		}
	}
	return nil, apperrors.NewNotFound("patient record", nil)
}
