// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the gorm model for an account. Password never leaves the server.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text" json:"-"`
	Role     Role      `gorm:"type:text;not null;index" json:"role"`

	// CompanyID binds a COMPANY account to the company it manages.
	CompanyID *uuid.UUID `gorm:"type:uuid;index" json:"companyId,omitempty"`
	Company   *Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz" json:"updatedAt"`

	Applications []Application `gorm:"foreignKey:UserID" json:"-"`
}
