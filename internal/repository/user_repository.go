package repository

import (
	"errors"
	"time"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by db.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// List returns every user, newest first.
func (r *GormUserRepository) List() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// FindByID finds a user by primary key.
func (r *GormUserRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail finds a user by unique email.
func (r *GormUserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create inserts a new user. A duplicate email surfaces as ErrConflict.
func (r *GormUserRepository) Create(user *model.User) error {
	var count int64
	if err := r.db.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return ConflictError("User with this email already exists")
	}
	return translate(r.db.Create(user).Error)
}

// Update persists the given user. The email uniqueness constraint is the
// backstop for concurrent updates.
func (r *GormUserRepository) Update(user *model.User) error {
	var count int64
	if err := r.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", user.Email, user.ID).
		Count(&count).Error; err != nil {
		return translate(err)
	}
	if count > 0 {
		return ConflictError("User with this email already exists")
	}
	return translate(r.db.Save(user).Error)
}

// Delete removes a user inside a transaction so the last-admin check and the
// delete see the same state.
func (r *GormUserRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if user.Role == model.RoleAdmin {
			var admins int64
			if err := tx.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&admins).Error; err != nil {
				return err
			}
			if admins <= 1 {
				return ConflictError("Cannot delete the last admin user")
			}
		}

		return tx.Delete(&user).Error
	})
}

// CountByRole counts users holding the given role.
func (r *GormUserRepository) CountByRole(role model.Role) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, translate(err)
}

// CountCreatedSince counts users registered within the last n days.
func (r *GormUserRepository) CountCreatedSince(days int) (int64, error) {
	var count int64
	since := time.Now().AddDate(0, 0, -days)
	err := r.db.Model(&model.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, translate(err)
}

// Count counts all users.
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, translate(err)
}
