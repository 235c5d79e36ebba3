package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the closed set of states an application moves through.
type ApplicationStatus string

const (
	// ApplicationStatusPending indicates that the application awaits review
	ApplicationStatusPending ApplicationStatus = "PENDING"
	// ApplicationStatusReviewing indicates that the company is reviewing the application
	ApplicationStatusReviewing ApplicationStatus = "REVIEWING"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
	// ApplicationStatusWithdrawn indicates that the applicant withdrew the application
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// Application represents a job application record. A user may apply to a
// given job at most once, enforced by the composite unique index.
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"userId"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"user"`

	JobID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"jobId"`
	Job   Job       `gorm:"foreignKey:JobID;references:ID" json:"job"`

	CVURL  string            `gorm:"type:text;not null;column:cv_url" json:"cvUrl"`
	Status ApplicationStatus `gorm:"type:text;not null" json:"status"`

	AppliedAt time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP" json:"appliedAt"`
}
