// Package application provides HTTP handlers for job applications,
// including the CV upload.
package application

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/repository"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/storage"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

// Controller handles application related endpoints.
type Controller struct {
	Applications repository.ApplicationRepository
	Jobs         repository.JobRepository
	Storage      storage.Storage
	MaxFileSize  int64
}

// NewController creates a new application Controller.
func NewController(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	store storage.Storage,
	maxFileSize int64,
) *Controller {
	return &Controller{
		Applications: applications,
		Jobs:         jobs,
		Storage:      store,
		MaxFileSize:  maxFileSize,
	}
}

type statusInfo struct {
	Status string `json:"status" binding:"required,oneof=PENDING REVIEWING ACCEPTED REJECTED WITHDRAWN"`
}

// isApplicant reports whether the actor submitted the application.
func isApplicant(user model.User, app model.Application) bool {
	return user.Role == model.RoleUser && user.ID == app.UserID
}

// ownsApplicationJob reports whether the actor's company posted the job the
// application targets.
func ownsApplicationJob(user model.User, app model.Application) bool {
	return user.Role == model.RoleCompany && user.CompanyID != nil && *user.CompanyID == app.Job.CompanyID
}

// isAdmin reports whether the actor is an administrator.
func isAdmin(user model.User) bool {
	return user.Role == model.RoleAdmin
}

// MyApplications lists the caller's own applications.
// @Summary List own applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} map[string]interface{} "applications and pagination"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /applications/my-applications [get]
func (ac *Controller) MyApplications(c *gin.Context) {
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

	apps, total, err := ac.Applications.ListByUser(user.ID, page)
	if err != nil {
		log.Printf("List own applications: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"pagination":   repository.NewPagination(page, total),
	})
}

// ListByJob lists the applications received by one job. Company accounts
// only see jobs of their own company.
// @Summary List applications for a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path string true "Job ID"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} map[string]interface{} "applications and pagination"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /applications/job/{jobId} [get]
func (ac *Controller) ListByJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	job, err := ac.Jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		log.Printf("List applications: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve applications"})
		return
	}

	if !isAdmin(user) {
		if user.CompanyID == nil || *user.CompanyID != job.CompanyID {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You can only view applications for your own company's jobs"})
			return
		}
	}

	var page repository.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid pagination parameters"})
		return
	}
	page = page.Normalize()

	apps, total, err := ac.Applications.ListByJob(jobID, page)
	if err != nil {
		log.Printf("List applications: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"pagination":   repository.NewPagination(page, total),
	})
}

// Apply submits an application with a PDF CV for the given job.
// @Summary Apply to a job
// @Tags Application
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path string true "Job ID"
// @Param cv formData file true "CV, PDF only"
// @Success 201 {object} map[string]interface{} "message and application"
// @Failure 400 {object} utilities.ErrorResponse "Missing or invalid CV, or already applied"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /applications/jobs/{jobId}/apply [post]
func (ac *Controller) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job ID"})
		return
	}

	file, err := c.FormFile("cv")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("File too large. Maximum size is %d bytes", ac.MaxFileSize),
			})
			return
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "CV file is required"})
		return
	}

	if file.Size > ac.MaxFileSize {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("File too large. Maximum size is %d bytes", ac.MaxFileSize),
		})
		return
	}
	contentType := file.Header.Get("Content-Type")
	if contentType != "application/pdf" || !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Only PDF files are allowed"})
		return
	}

	if _, err := ac.Jobs.FindByID(jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		log.Printf("Apply: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not submit application"})
		return
	}

	if _, err := ac.Applications.FindByUserAndJob(user.ID, jobID); err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "You have already applied to this job"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Apply: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not submit application"})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("Apply: open upload: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not read uploaded file"})
		return
	}
	defer src.Close()

	cvURL, err := ac.Storage.Save(storage.UniqueName("cv", file.Filename), src)
	if err != nil {
		log.Printf("Apply: store upload: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not store uploaded file"})
		return
	}

	app := model.Application{
		UserID: user.ID,
		JobID:  jobID,
		CVURL:  cvURL,
		Status: model.ApplicationStatusPending,
	}
	if err := ac.Applications.Create(&app); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "You have already applied to this job"})
			return
		}
		log.Printf("Apply: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not submit application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// UpdateStatus moves an application through the review pipeline. Restricted
// to the company owning the job and to admins.
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application ID"
// @Param Info body statusInfo true "New status"
// @Success 200 {object} map[string]interface{} "message and application"
// @Failure 403 {object} utilities.ErrorResponse "Job belongs to another company"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /applications/{id}/status [patch]
func (ac *Controller) UpdateStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application ID"})
		return
	}

	var info statusInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	app, err := ac.Applications.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		log.Printf("Update application status: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update application"})
		return
	}

	if !isAdmin(user) && !ownsApplicationJob(user, *app) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You can only manage applications for your own company's jobs"})
		return
	}

	updated, err := ac.Applications.UpdateStatus(id, model.ApplicationStatus(info.Status))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		log.Printf("Update application status: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not update application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated successfully",
		"application": updated,
	})
}

// Delete withdraws an application. Allowed for the applicant, the company
// owning the job, and admins.
// @Summary Delete an application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 403 {object} utilities.ErrorResponse "Not allowed to delete this application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /applications/{id} [delete]
func (ac *Controller) Delete(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application ID"})
		return
	}

	app, err := ac.Applications.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		log.Printf("Delete application: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not delete application"})
		return
	}

	if !isAdmin(user) && !ownsApplicationJob(user, *app) && !isApplicant(user, *app) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "You are not allowed to delete this application"})
		return
	}

	switch err := ac.Applications.Delete(id); {
	case err == nil:
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted successfully"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
	default:
		log.Printf("Delete application: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Could not delete application"})
	}
}
