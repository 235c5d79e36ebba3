// Package job provides HTTP handlers for job openings.
package job

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

// Controller handles job related endpoints.
type Controller struct {
	Jobs      repository.JobRepository
	Companies repository.CompanyRepository
}

// NewController creates a new job Controller.
func NewController(jobs repository.JobRepository, companies repository.CompanyRepository) *Controller {
	return &Controller{Jobs: jobs, Companies: companies}
}

type jobInfo struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=20"`
	Location    string `json:"location" binding:"required,min=2"`
	CompanyID   string `json:"companyId" binding:"required,uuid"`
}

// actsForCompany reports whether the actor may mutate resources of the given
// company: admins always, company accounts only for their own company.
func actsForCompany(user model.User, companyID uuid.UUID) bool {
	if user.Role == model.RoleAdmin {
		return true
	}
	return user.Role == model.RoleCompany && user.CompanyID != nil && *user.CompanyID == companyID
}

// List is the public job search with filters and pagination.
// @Summary Search jobs
// @Description Title and location filter with case-insensitive substring matching.
// @Tags Job
// @Produce json
// @Param title query string false "Filter on job title"
// @Param location query string false "Filter on location"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} map[string]interface{} "jobs and pagination"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *Controller) List(c *gin.Context) {
	var page repository.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid pagination parameters"})
		return
	}
	page = page.Normalize()

	filter := repository.JobFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
		Page:     page,
	}

	jobs, total, err := jc.Jobs.List(filter)
	if err != nil {
		log.Printf("List jobs: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"pagination": repository.NewPagination(page, total),
	})
}

// GetByID returns one job, publicly.
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]model.Job
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (jc *Controller) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	job, err := jc.Jobs.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		log.Printf("Get job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve job"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// MyJobs lists the jobs of the caller's company; admins see all jobs.
// @Summary List jobs of the authenticated company
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} map[string]interface{} "jobs and pagination"
// @Failure 403 {object} utilities.ErrorResponse "Company account without company"
// @Router /jobs/company/my-jobs [get]
func (jc *Controller) MyJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var page repository.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid pagination parameters"})
		return
	}
	page = page.Normalize()

	filter := repository.JobFilter{Page: page}
	if user.Role == model.RoleCompany {
		if user.CompanyID == nil {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "No company assigned to this account"})
			return
		}
		filter.CompanyID = user.CompanyID
	}

	jobs, total, err := jc.Jobs.List(filter)
	if err != nil {
		log.Printf("List company jobs: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve company jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"pagination": repository.NewPagination(page, total),
	})
}

// Create adds a job under a company the caller acts for.
// @Summary Create a job
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body jobInfo true "Job data"
// @Success 201 {object} map[string]interface{} "message and job"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Router /jobs [post]
func (jc *Controller) Create(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info jobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}
	companyID := uuid.MustParse(info.CompanyID)

	if _, err := jc.Companies.FindByID(companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		log.Printf("Create job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not create job"})
		return
	}

	if !actsForCompany(user, companyID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You can only create jobs for your own company"})
		return
	}

	job := model.Job{
		Title:       info.Title,
		Description: info.Description,
		Location:    info.Location,
		CompanyID:   companyID,
	}
	if err := jc.Jobs.Create(&job); err != nil {
		log.Printf("Create job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not create job"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Job created successfully",
		"job":     job,
	})
}

// Update rewrites a job the caller acts for. Reassigning to a different
// company is only allowed when the caller acts for that company too.
// @Summary Update a job
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job ID"
// @Param Info body jobInfo true "Job data"
// @Success 200 {object} map[string]interface{} "message and job"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company"
// @Failure 404 {object} utilities.ErrorResponse "Job or company not found"
// @Router /jobs/{id} [put]
func (jc *Controller) Update(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	var info jobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}
	companyID := uuid.MustParse(info.CompanyID)

	job, err := jc.Jobs.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		log.Printf("Update job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update job"})
		return
	}

	if !actsForCompany(user, job.CompanyID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You can only update jobs from your own company"})
		return
	}

	if companyID != job.CompanyID {
		if _, err := jc.Companies.FindByID(companyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
				return
			}
			log.Printf("Update job: %v", err)
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update job"})
			return
		}
		if !actsForCompany(user, companyID) {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You can only assign jobs to your own company"})
			return
		}
	}

	job.Title = info.Title
	job.Description = info.Description
	job.Location = info.Location
	job.CompanyID = companyID
	// Refreshed by the repository after save.
	job.Company = model.Company{}

	if err := jc.Jobs.Update(job); err != nil {
		log.Printf("Update job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job updated successfully",
		"job":     job,
	})
}

// Delete removes a job the caller acts for, provided nobody applied to it.
// @Summary Delete a job
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Job still has applications"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /jobs/{id} [delete]
func (jc *Controller) Delete(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	job, err := jc.Jobs.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		log.Printf("Delete job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not delete job"})
		return
	}

	if !actsForCompany(user, job.CompanyID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You can only delete jobs from your own company"})
		return
	}

	switch err := jc.Jobs.Delete(id); {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted successfully"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Job has applications. Delete applications first."})
	default:
		log.Printf("Delete job: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not delete job"})
	}
}
