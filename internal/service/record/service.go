package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/repository"
	apperrors "github.com/medilink/records-api/pkg/errors"
	"github.com/medilink/records-api/pkg/format"
	"github.com/medilink/records-api/pkg/metrics"
)

type RecordService interface {
	CreateRecord(ctx context.Context, hospitalID uuid.UUID, req *model.CreateRecordRequest) (*model.PatientRecord, error)
	ListRecords(ctx context.Context, hospitalID uuid.UUID, filterTerm string) ([]*model.PatientRecord, error)
	GetRecord(ctx context.Context, hospitalID, id uuid.UUID) (*model.PatientRecord, error)
	SearchByUniqueID(ctx context.Context, uniqueID string) (*model.SearchResult, error)
	Stats(ctx context.Context, hospitalID uuid.UUID) (*model.RecordStats, error)
}

type Service struct {
	repo    repository.RecordRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.RecordRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
}

// CreateRecord validates and stores a new patient record owned by
// hospitalID. The unique ID constraint is enforced by the store; a conflict
// surfaces as a duplicate error, not a generic failure.
func (s *Service) CreateRecord(ctx context.Context, hospitalID uuid.UUID, req *model.CreateRecordRequest) (*model.PatientRecord, error) {
	uniqueID := strings.TrimSpace(req.UniqueID)
	fullName := strings.TrimSpace(req.FullName)
	if uniqueID == "" || fullName == "" {
		return nil, apperrors.NewValidation("unique ID and full name are required")
	}

	record := &model.PatientRecord{
		Base: model.Base{
			ID: uuid.New(),
		},
		UniqueID:       uniqueID,
		FullName:       fullName,
		SurgeryDetails: req.SurgeryDetails,
		Medicines:      req.Medicines,
		Diagnosis:      req.Diagnosis,
		Notes:          req.Notes,
		HospitalID:     hospitalID,
	}

	err := s.timed("create", func() error { return s.repo.Create(ctx, record) })
	if err != nil {
		if apperrors.IsDuplicate(err) {
			s.count(func(m *metrics.Metrics) { m.DuplicatesRejected.Inc() })
			return nil, err
		}
		return nil, fmt.Errorf("failed to create patient record: %w", err)
	}

	s.count(func(m *metrics.Metrics) { m.RecordsCreated.Inc() })
	return record, nil
}

// ListRecords returns the hospital's own records, newest first. A non-empty
// filterTerm narrows the result the way the dashboard search box does.
func (s *Service) ListRecords(ctx context.Context, hospitalID uuid.UUID, filterTerm string) ([]*model.PatientRecord, error) {
	records, err := s.repo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient records: %w", err)
	}
	return FilterRecords(records, filterTerm), nil
}

// GetRecord fetches a single record and enforces ownership: a hospital can
// only read records it created. Foreign records read as not found.
func (s *Service) GetRecord(ctx context.Context, hospitalID, id uuid.UUID) (*model.PatientRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.HospitalID != hospitalID {
		return nil, apperrors.NewNotFound("patient record", nil)
	}
	return record, nil
}

// SearchByUniqueID is the doctor-facing exact lookup. Input is trimmed; no
// partial matching. The call never mutates the store.
func (s *Service) SearchByUniqueID(ctx context.Context, uniqueID string) (*model.SearchResult, error) {
	uniqueID = strings.TrimSpace(uniqueID)
	if uniqueID == "" {
		return nil, apperrors.NewValidation("patient unique ID is required")
	}

	var result *model.SearchResult
	err := s.timed("search", func() error {
		var serr error
		result, serr = s.repo.GetByUniqueID(ctx, uniqueID)
		return serr
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.count(func(m *metrics.Metrics) { m.RecordSearches.WithLabelValues("miss").Inc() })
		}
		return nil, err
	}

	result.Critical = IsCritical(result.Diagnosis)
	result.FormattedUniqueID = format.UniqueID(result.UniqueID)
	s.count(func(m *metrics.Metrics) { m.RecordSearches.WithLabelValues("hit").Inc() })
	return result, nil
}

// Stats summarizes the hospital's records for the dashboard cards.
func (s *Service) Stats(ctx context.Context, hospitalID uuid.UUID) (*model.RecordStats, error) {
	records, err := s.repo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for stats: %w", err)
	}
	stats := ComputeStats(records, s.now())
	return &stats, nil
}

func (s *Service) count(fn func(*metrics.Metrics)) {
	if s.metrics != nil {
		fn(s.metrics)
	}
}

// timed runs a store operation, recording its latency and, when it fails
// for a reason other than the expected domain outcomes, a failure count.
func (s *Service) timed(op string, fn func() error) error {
	if s.metrics == nil {
		return fn()
	}
	start := time.Now()
	err := fn()
	s.metrics.RecordStoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !apperrors.IsDuplicate(err) && !apperrors.IsNotFound(err) {
		s.metrics.RecordStoreFailures.WithLabelValues(op).Inc()
	}
	return err
}
