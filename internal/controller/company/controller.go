// Package company provides HTTP handlers for company management.
package company

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/repository"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

// Controller handles company related endpoints.
type Controller struct {
	Companies repository.CompanyRepository
}

// NewController creates a new company Controller.
func NewController(companies repository.CompanyRepository) *Controller {
	return &Controller{Companies: companies}
}

type companyInfo struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description" binding:"omitempty,min=10"`
	LogoURL     string `json:"logoUrl" binding:"omitempty,url"`
}

// List returns every company with its job count.
// @Summary List all companies
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string][]model.Company
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Router /companies [get]
func (cc *Controller) List(c *gin.Context) {
	companies, err := cc.Companies.List()
	if err != nil {
		log.Printf("List companies: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve companies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// GetByID returns one company with its jobs.
// @Summary Get company by ID
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company ID"
// @Success 200 {object} map[string]model.Company
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Router /companies/{id} [get]
func (cc *Controller) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid company ID"})
		return
	}

	company, err := cc.Companies.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		log.Printf("Get company: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// Create adds a new company. Names are globally unique.
// @Summary Create a company
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body companyInfo true "Company data"
// @Success 201 {object} map[string]interface{} "message and company"
// @Failure 400 {object} utilities.ValidationErrorResponse "Malformed input or duplicate name"
// @Router /companies [post]
func (cc *Controller) Create(c *gin.Context) {
	var info companyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	company := model.Company{
		Name:        info.Name,
		Description: info.Description,
		LogoURL:     info.LogoURL,
	}
	if err := cc.Companies.Create(&company); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "A company with this name already exists"})
			return
		}
		log.Printf("Create company: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not create company"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Company created successfully",
		"company": company,
	})
}

// Update modifies an existing company.
// @Summary Update a company
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company ID"
// @Param Info body companyInfo true "Company data"
// @Success 200 {object} map[string]interface{} "message and company"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Router /companies/{id} [put]
func (cc *Controller) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid company ID"})
		return
	}

	var info companyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	company, err := cc.Companies.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		log.Printf("Update company: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update company"})
		return
	}

	company.Name = info.Name
	if info.Description != "" {
		company.Description = info.Description
	}
	if info.LogoURL != "" {
		company.LogoURL = info.LogoURL
	}
	// Jobs were preloaded for the lookup; don't let Save cascade them.
	company.Jobs = nil

	if err := cc.Companies.Update(company); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "A company with this name already exists"})
			return
		}
		log.Printf("Update company: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company updated successfully",
		"company": company,
	})
}

// Delete removes a company that has no jobs left.
// @Summary Delete a company
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Company ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Company still owns jobs"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Router /companies/{id} [delete]
func (cc *Controller) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid company ID"})
		return
	}

	switch err := cc.Companies.Delete(id); {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Company deleted successfully"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Company has associated jobs. Delete jobs first."})
	default:
		log.Printf("Delete company: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not delete company"})
	}
}
