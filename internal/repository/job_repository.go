package repository

import (
	"errors"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applicationCountSelect fills Job.ApplicationCount without a second query.
const applicationCountSelect = "jobs.*, (SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id) AS application_count"

// GormJobRepository is a GORM implementation of JobRepository.
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository backed by db.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// List retrieves jobs matching the filter together with the total count for
// pagination. Title and location are matched case-insensitively as
// substrings.
func (r *GormJobRepository) List(filter JobFilter) ([]model.Job, int64, error) {
	query := r.db.Model(&model.Job{})

	if filter.Title != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	q := filter.Page.Normalize()

	var jobs []model.Job
	err := query.
		Select(applicationCountSelect).
		Preload("Company").
		Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return jobs, total, nil
}

// FindByID finds a job with company and application count attached.
func (r *GormJobRepository) FindByID(id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := r.db.
		Select(applicationCountSelect).
		Preload("Company").
		Where("jobs.id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// Create inserts a new job.
func (r *GormJobRepository) Create(job *model.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return translate(err)
	}
	// Reload to pick up the company association for the response.
	return translate(r.db.Preload("Company").Where("id = ?", job.ID).First(job).Error)
}

// Update persists the given job.
func (r *GormJobRepository) Update(job *model.Job) error {
	if err := r.db.Save(job).Error; err != nil {
		return translate(err)
	}
	return translate(r.db.Preload("Company").Where("id = ?", job.ID).First(job).Error)
}

// Delete removes a job inside a transaction so the dependent-application
// check and the delete see the same state.
func (r *GormJobRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Where("id = ?", id).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var applications int64
		if err := tx.Model(&model.Application{}).Where("job_id = ?", id).Count(&applications).Error; err != nil {
			return err
		}
		if applications > 0 {
			return ConflictError("Job has applications. Delete applications first.")
		}

		return tx.Delete(&job).Error
	})
}
