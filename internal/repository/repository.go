// Package repository provides persistence-backed CRUD over the board's
// entities. Implementations translate driver-level failures into the two
// sentinel errors below so handlers can map them to HTTP statuses without
// knowing about gorm or Postgres.
package repository

import (
	"errors"
	"fmt"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the target row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a uniqueness or dependent-child
	// invariant would be violated.
	ErrConflict = errors.New("conflict")
)

// ConflictError wraps ErrConflict with a caller-facing reason.
func ConflictError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}

// PageQuery carries pagination parameters from the query string.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize clamps the query to sane values, defaulting to page 1 of 10.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

// Offset converts the page number to a row offset.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the page metadata returned next to every list.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes page count from the total row count.
func NewPagination(q PageQuery, total int64) Pagination {
	limit := int64(q.Limit)
	return Pagination{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}
}

// JobFilter holds filtering options for listing jobs.
type JobFilter struct {
	// Title and Location are matched as case-insensitive substrings.
	Title    string
	Location string
	// CompanyID restricts the list to one company when non-nil.
	CompanyID *uuid.UUID
	Page      PageQuery
}

// UserRepository defines data access for accounts.
type UserRepository interface {
	List() ([]model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	// Delete removes the user, refusing to remove the last remaining admin.
	Delete(id uuid.UUID) error
	CountByRole(role model.Role) (int64, error)
	CountCreatedSince(days int) (int64, error)
	Count() (int64, error)
}

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	List() ([]model.Company, error)
	FindByID(id uuid.UUID) (*model.Company, error)
	Create(company *model.Company) error
	Update(company *model.Company) error
	// Delete removes the company, refusing while it still owns jobs.
	Delete(id uuid.UUID) error
}

// JobRepository defines data access for job openings.
type JobRepository interface {
	List(filter JobFilter) ([]model.Job, int64, error)
	FindByID(id uuid.UUID) (*model.Job, error)
	Create(job *model.Job) error
	Update(job *model.Job) error
	// Delete removes the job, refusing while applications reference it.
	Delete(id uuid.UUID) error
}

// ApplicationRepository defines data access for job applications.
type ApplicationRepository interface {
	ListByUser(userID uuid.UUID, q PageQuery) ([]model.Application, int64, error)
	ListByJob(jobID uuid.UUID, q PageQuery) ([]model.Application, int64, error)
	FindByID(id uuid.UUID) (*model.Application, error)
	FindByUserAndJob(userID, jobID uuid.UUID) (*model.Application, error)
	Create(app *model.Application) error
	UpdateStatus(id uuid.UUID, status model.ApplicationStatus) (*model.Application, error)
	Delete(id uuid.UUID) error
}

// translate maps gorm and Postgres errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ConflictError("duplicate value violates a unique constraint")
		case "23503":
			return ConflictError("operation violates a foreign key constraint")
		}
	}
	return err
}
