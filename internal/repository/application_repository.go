package repository

import (
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository.
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository backed by db.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// ListByUser returns one page of a user's applications, newest first.
func (r *GormApplicationRepository) ListByUser(userID uuid.UUID, q PageQuery) ([]model.Application, int64, error) {
	return r.list(r.db.Where("user_id = ?", userID), q)
}

// ListByJob returns one page of a job's applications, newest first.
func (r *GormApplicationRepository) ListByJob(jobID uuid.UUID, q PageQuery) ([]model.Application, int64, error) {
	return r.list(r.db.Where("job_id = ?", jobID), q)
}

func (r *GormApplicationRepository) list(scope *gorm.DB, q PageQuery) ([]model.Application, int64, error) {
	var total int64
	if err := scope.Model(&model.Application{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	q = q.Normalize()

	var apps []model.Application
	err := scope.
		Preload("User").
		Preload("Job").
		Preload("Job.Company").
		Order("applied_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return apps, total, nil
}

// FindByID finds an application with user, job and company preloaded.
func (r *GormApplicationRepository) FindByID(id uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.db.
		Preload("User").
		Preload("Job").
		Preload("Job.Company").
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// FindByUserAndJob looks up the unique (user, job) application pair.
func (r *GormApplicationRepository) FindByUserAndJob(userID, jobID uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&app).Error
	if err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// Create inserts a new application. The composite unique index on
// (user_id, job_id) is the backstop against a racing duplicate apply, its
// violation surfaces as ErrConflict.
func (r *GormApplicationRepository) Create(app *model.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return translate(err)
	}
	return translate(
		r.db.
			Preload("User").
			Preload("Job").
			Preload("Job.Company").
			Where("id = ?", app.ID).
			First(app).Error,
	)
}

// UpdateStatus moves an application to the given status and returns the
// refreshed record.
func (r *GormApplicationRepository) UpdateStatus(id uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	result := r.db.Model(&model.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(id)
}

// Delete removes an application.
func (r *GormApplicationRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&model.Application{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
