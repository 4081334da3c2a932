package model

import (
	"github.com/google/uuid"
)

// Role is fixed at signup and never changed by the application.
type Role string

const (
	RoleHospital Role = "hospital"
	RoleDoctor   Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RoleHospital || r == RoleDoctor
}

// User is an authentication account. Display fields live on Profile.
// Credentials only ever travel in the request types below.
type User struct {
	Base
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// Profile carries the role and role-specific display fields for an account.
type Profile struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Role          Role      `json:"role" db:"role"`
	FullName      string    `json:"full_name" db:"full_name"`
	HospitalName  string    `json:"hospital_name,omitempty" db:"hospital_name"`
	DoctorLicense string    `json:"doctor_license,omitempty" db:"doctor_license"`
}

// DisplayName prefers the hospital name for hospital accounts.
func (p *Profile) DisplayName() string {
	if p.Role == RoleHospital && p.HospitalName != "" {
		return p.HospitalName
	}
	return p.FullName
}

type SignupRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          Role   `json:"role" binding:"required,oneof=hospital doctor"`
	FullName      string `json:"full_name" binding:"required"`
	HospitalName  string `json:"hospital_name,omitempty"`
	DoctorLicense string `json:"doctor_license,omitempty"`
}

// LoginRequest carries the role the user selected in the UI; it is checked
// against the stored profile role after authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required,oneof=hospital doctor"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	Profile     *Profile `json:"profile"`
}

// Session is the authenticated caller's identity plus profile, as resolved
// by the auth middleware.
type Session struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	Profile *Profile  `json:"profile"`
}
