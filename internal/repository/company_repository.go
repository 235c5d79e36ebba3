package repository

import (
	"errors"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository backed by db.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// List returns every company, newest first, with its job count filled in.
func (r *GormCompanyRepository) List() ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.Order("created_at DESC").Find(&companies).Error; err != nil {
		return nil, translate(err)
	}
	for i := range companies {
		if err := r.db.Model(&model.Job{}).
			Where("company_id = ?", companies[i].ID).
			Count(&companies[i].JobCount).Error; err != nil {
			return nil, translate(err)
		}
	}
	return companies, nil
}

// FindByID finds a company with its jobs preloaded.
func (r *GormCompanyRepository) FindByID(id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.Preload("Jobs").Where("id = ?", id).First(&company).Error; err != nil {
		return nil, translate(err)
	}
	company.JobCount = int64(len(company.Jobs))
	return &company, nil
}

// Create inserts a new company. A duplicate name surfaces as ErrConflict.
func (r *GormCompanyRepository) Create(company *model.Company) error {
	var count int64
	if err := r.db.Model(&model.Company{}).Where("name = ?", company.Name).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return ConflictError("A company with this name already exists")
	}
	return translate(r.db.Create(company).Error)
}

// Update persists the given company, keeping the name unique.
func (r *GormCompanyRepository) Update(company *model.Company) error {
	var count int64
	if err := r.db.Model(&model.Company{}).
		Where("name = ? AND id <> ?", company.Name, company.ID).
		Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return ConflictError("A company with this name already exists")
	}
	return translate(r.db.Save(company).Error)
}

// Delete removes a company inside a transaction so the dependent-job check
// and the delete see the same state.
func (r *GormCompanyRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var company model.Company
		if err := tx.Where("id = ?", id).First(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var jobs int64
		if err := tx.Model(&model.Job{}).Where("company_id = ?", id).Count(&jobs).Error; err != nil {
			return err
		}
		if jobs > 0 {
			return ConflictError("Company has associated jobs. Delete jobs first.")
		}

		return tx.Delete(&company).Error
	})
}
