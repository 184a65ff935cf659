package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a supplier that can be the subject of evaluation requests.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name" validate:"required"`
	TaxID     *string   `json:"tax_id"`
	Country   string    `gorm:"type:varchar(2);not null;default:'CL'" json:"country"`
	CreatedAt time.Time `json:"created_at"`
}
