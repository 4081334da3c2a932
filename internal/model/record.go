package model

import (
	"github.com/google/uuid"
)

// PatientRecord is a hospital-authored medical record. Records are
// append-only: the application exposes no update or delete path.
type PatientRecord struct {
	Base
	UniqueID       string    `json:"unique_id" db:"unique_id"`
	FullName       string    `json:"full_name" db:"full_name"`
	SurgeryDetails string    `json:"surgery_details" db:"surgery_details"`
	Medicines      string    `json:"medicines" db:"medicines"`
	Diagnosis      string    `json:"diagnosis" db:"diagnosis"`
	Notes          string    `json:"notes" db:"notes"`
	HospitalID     uuid.UUID `json:"hospital_id" db:"hospital_id"`
}

type CreateRecordRequest struct {
	UniqueID       string `json:"unique_id" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	SurgeryDetails string `json:"surgery_details"`
	Medicines      string `json:"medicines"`
	Diagnosis      string `json:"diagnosis"`
	Notes          string `json:"notes"`
}

// SearchResult is a doctor-facing view of a record: the record itself, the
// display name of the owning hospital, and presentation extras.
type SearchResult struct {
	PatientRecord
	HospitalName      string `json:"hospital_name" db:"hospital_name"`
	Critical          bool   `json:"critical" db:"-"`
	FormattedUniqueID string `json:"formatted_unique_id" db:"-"`
}

// RecordStats is the hospital dashboard summary.
type RecordStats struct {
	Total      int `json:"total"`
	AddedToday int `json:"added_today"`
	Critical   int `json:"critical"`
}
