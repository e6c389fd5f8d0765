package models

import "time"

// Doctor verification statuses.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// DoctorVerification is a user's professional verification submission.
// One submission per user; approval flips the user to the doctor role.
type DoctorVerification struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	UserID             uint       `json:"user_id" gorm:"uniqueIndex"`
	FullName           string     `json:"full_name" gorm:"size:100"`
	Specialization     string     `json:"specialization" gorm:"size:100"`
	LicenseNumber      string     `json:"license_number" gorm:"size:50"`
	LicenseDocumentURL string     `json:"license_document_url" gorm:"type:text"`
	ClinicAddress      string     `json:"clinic_address" gorm:"type:text"`
	PhoneNumber        string     `json:"phone_number" gorm:"size:20"`
	Bio                string     `json:"bio" gorm:"type:text"`
	Status             string     `json:"status" gorm:"size:20;default:'pending'"`
	RejectionReason    string     `json:"rejection_reason,omitempty" gorm:"type:text"`
	SubmittedAt        time.Time  `json:"submitted_at" gorm:"autoCreateTime"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
}

// SubmitVerificationRequest defines the request body for a verification submission
type SubmitVerificationRequest struct {
	FullName           string `json:"full_name" validate:"required,min=2,max=100"`
	Specialization     string `json:"specialization" validate:"required,min=2,max=100"`
	LicenseNumber      string `json:"license_number" validate:"required,min=2,max=50"`
	LicenseDocumentURL string `json:"license_document_url" validate:"required,url"`
	ClinicAddress      string `json:"clinic_address,omitempty"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	Bio                string `json:"bio,omitempty"`
}

// ReviewVerificationRequest defines the request body for an admin review decision
type ReviewVerificationRequest struct {
	Status          string `json:"status" validate:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}
