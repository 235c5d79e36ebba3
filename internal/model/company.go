package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is the gorm model for an employer. Name is globally unique.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	LogoURL     string    `gorm:"type:text" json:"logoUrl,omitempty"`
	CreatedAt   time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP" json:"createdAt"`

	Jobs []Job `gorm:"foreignKey:CompanyID" json:"jobs,omitempty"`

	// JobCount is filled by list queries, it is not a column.
	JobCount int64 `gorm:"-:all" json:"jobCount"`
}
