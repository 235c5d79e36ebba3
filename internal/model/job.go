package model

import (
	"time"

	"github.com/google/uuid"
)

// Job is the gorm model for a job opening owned by a company.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"type:text;not null" json:"location"`

	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP" json:"createdAt"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`

	// ApplicationCount is scanned from a subquery select, it is not a column.
	ApplicationCount int64 `gorm:"->;-:migration" json:"applicationCount"`
}
