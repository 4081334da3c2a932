package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medilink/records-api/internal/model"
)

// RecordRepository is the durable patient record store. Create must surface
// a duplicate unique ID as errors.ErrDuplicate and GetByUniqueID a miss as
// errors.ErrNotFound, distinguishable from generic failures.
type RecordRepository interface {
	Create(ctx context.Context, record *model.PatientRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.PatientRecord, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (*model.SearchResult, error)
}

type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}
