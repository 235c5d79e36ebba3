// Package user provides HTTP handlers for the admin-only user CRUD.
package user

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/repository"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

// Controller handles user management endpoints.
type Controller struct {
	Users     repository.UserRepository
	Companies repository.CompanyRepository
}

// NewController creates a new user Controller.
func NewController(users repository.UserRepository, companies repository.CompanyRepository) *Controller {
	return &Controller{Users: users, Companies: companies}
}

type createUserInfo struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role" binding:"required,oneof=USER COMPANY ADMIN"`
	CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
}

type updateUserInfo struct {
	Name      string  `json:"name" binding:"omitempty"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Password  string  `json:"password" binding:"omitempty,min=6"`
	Role      string  `json:"role" binding:"omitempty,oneof=USER COMPANY ADMIN"`
	CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
}

// List returns every user, newest first.
// @Summary List all users
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string][]model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users [get]
func (uc *Controller) List(c *gin.Context) {
	users, err := uc.Users.List()
	if err != nil {
		log.Printf("List users: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error fetching users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetByID returns a single user.
// @Summary Get user by ID
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User ID"
// @Success 200 {object} map[string]model.User
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (uc *Controller) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	user, err := uc.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("Get user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error fetching user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Create adds a new user with any role, including ADMIN.
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body createUserInfo true "User data"
// @Success 201 {object} map[string]interface{} "message and user"
// @Failure 400 {object} utilities.ValidationErrorResponse "Malformed input or duplicate email"
// @Router /users [post]
func (uc *Controller) Create(c *gin.Context) {
	var info createUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	companyID, ok := uc.resolveCompany(c, info.CompanyID)
	if !ok {
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Name:      info.Name,
		Email:     info.Email,
		Password:  hashedPassword,
		Role:      model.Role(info.Role),
		CompanyID: companyID,
	}
	if err := uc.Users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "User with this email already exists"})
			return
		}
		log.Printf("Create user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error creating user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Update modifies the provided fields of an existing user.
// @Summary Update a user
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User ID"
// @Param Info body updateUserInfo true "Fields to update"
// @Success 200 {object} map[string]interface{} "message and user"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /users/{id} [put]
func (uc *Controller) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var info updateUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	user, err := uc.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("Update user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error updating user"})
		return
	}

	if info.Name != "" {
		user.Name = info.Name
	}
	if info.Email != "" {
		user.Email = info.Email
	}
	if info.Role != "" {
		user.Role = model.Role(info.Role)
	}
	if info.Password != "" {
		hashed, err := utilities.HashPassword(info.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
			})
			return
		}
		user.Password = hashed
	}
	if info.CompanyID != nil {
		companyID, ok := uc.resolveCompany(c, info.CompanyID)
		if !ok {
			return
		}
		user.CompanyID = companyID
	}

	if err := uc.Users.Update(user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "User with this email already exists"})
			return
		}
		log.Printf("Update user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error updating user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete removes a user. Deleting the last remaining admin is refused.
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Last admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (uc *Controller) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	switch err := uc.Users.Delete(id); {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "User deleted successfully"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Cannot delete the last admin user"})
	default:
		log.Printf("Delete user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error deleting user"})
	}
}

// Stats returns account totals broken down by role.
// @Summary User statistics overview
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]int64
// @Router /users/stats/overview [get]
func (uc *Controller) Stats(c *gin.Context) {
	fail := func(err error) {
		log.Printf("User stats: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Error fetching user statistics"})
	}

	total, err := uc.Users.Count()
	if err != nil {
		fail(err)
		return
	}
	users, err := uc.Users.CountByRole(model.RoleUser)
	if err != nil {
		fail(err)
		return
	}
	companies, err := uc.Users.CountByRole(model.RoleCompany)
	if err != nil {
		fail(err)
		return
	}
	admins, err := uc.Users.CountByRole(model.RoleAdmin)
	if err != nil {
		fail(err)
		return
	}
	recent, err := uc.Users.CountCreatedSince(30)
	if err != nil {
		fail(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":               total,
		"users":               users,
		"companies":           companies,
		"admins":              admins,
		"recentRegistrations": recent,
	})
}

// resolveCompany parses and verifies an optional companyId, writing the
// error response itself when the reference is bad.
func (uc *Controller) resolveCompany(c *gin.Context, raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid company ID"})
		return nil, false
	}
	if _, err := uc.Companies.FindByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return nil, false
		}
		log.Printf("Resolve company: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to verify company"})
		return nil, false
	}
	return &id, true
}
