package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RequestStatus is the review state of an evaluation request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusInReview RequestStatus = "in_review"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further edits.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is an evaluation request filed against a company. RiskScore is
// always derived from RiskInputs by the risk scorer and is never set directly.
type Request struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID  uuid.UUID         `gorm:"type:uuid;index;not null" json:"company_id" validate:"required"`
	Company    *Company          `gorm:"foreignKey:CompanyID" json:"-"`
	Status     RequestStatus     `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	RiskInputs datatypes.JSONMap `gorm:"type:jsonb;not null" json:"risk_inputs"`
	RiskScore  int               `gorm:"not null" json:"risk_score"`
	CreatedAt  time.Time         `json:"created_at"`
}
