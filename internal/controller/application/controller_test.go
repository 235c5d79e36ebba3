package application

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/auth"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/database"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/middleware"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/repository"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/storage"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/testutil"
)

var testDB *database.Service

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var teardown func(context.Context) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

// newApplicationRouter builds the application routes over a disk store rooted
// in dir. maxFileSize lets individual tests shrink the upload budget.
func newApplicationRouter(t *testing.T, dir string, maxFileSize int64) *gin.Engine {
	t.Helper()

	users := repository.NewUserRepository(testDB.DB)
	jobs := repository.NewJobRepository(testDB.DB)
	applications := repository.NewApplicationRepository(testDB.DB)
	tokens := auth.NewTokenService(testDB.Config.JWTSecret, testDB.Config.TokenTTL)

	store, err := storage.NewDiskStorage(dir, "/uploads")
	if err != nil {
		t.Fatalf("failed to create disk storage: %v", err)
	}

	ac := NewController(applications, jobs, store, maxFileSize)
	authenticate := middleware.Authenticate(tokens, users)

	r := gin.Default()
	group := r.Group("/applications")
	group.Use(authenticate)
	group.GET("my-applications", middleware.RequireRole(model.RoleUser), ac.MyApplications)
	group.GET("job/:jobId", middleware.RequireRole(model.RoleCompany, model.RoleAdmin), ac.ListByJob)
	group.POST("jobs/:jobId/apply",
		middleware.RequireRole(model.RoleUser),
		middleware.SizeLimit(maxFileSize),
		ac.Apply)
	group.PATCH(":id/status", middleware.RequireRole(model.RoleCompany, model.RoleAdmin), ac.UpdateStatus)
	group.DELETE(":id", ac.Delete)
	return r
}

const pdfContent = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>"

func TestMyApplications(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser1)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/applications/my-applications", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	apps := resp["applications"].([]interface{})
	assert.Len(t, apps, 1)

	app := apps[0].(map[string]interface{})
	assert.Equal(t, string(model.ApplicationStatusPending), app["status"])

	// Job and its company come preloaded for list rendering.
	job := app["job"].(map[string]interface{})
	assert.Equal(t, database.TestJobA1.Title, job["title"])
	company := job["company"].(map[string]interface{})
	assert.Equal(t, database.TestCompanyA.Name, company["name"])
}

func TestListByJob_owningCompany(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserA)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		"/applications/job/"+database.TestJobA1.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	apps := resp["applications"].([]interface{})
	assert.Len(t, apps, 1)

	applicant := apps[0].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, database.TestUser1.Email, applicant["email"])
}

func TestListByJob_foreignCompanyForbidden(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserB)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/applications/job/"+database.TestJobA1.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListByJob_admin(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestAdmin)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/applications/job/"+database.TestJobA1.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApply_success(t *testing.T) {
	dir := t.TempDir()
	r := newApplicationRouter(t, dir, 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, resp := testutil.MakeUploadRequest("cv", "bob-cv.pdf", "application/pdf",
		[]byte(pdfContent), token, r, "/applications/jobs/"+database.TestJobA2.ID.String()+"/apply")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Application submitted successfully", resp["message"])

	app := resp["application"].(map[string]interface{})
	assert.Equal(t, string(model.ApplicationStatusPending), app["status"])

	cvURL, ok := app["cvUrl"].(string)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(cvURL, "/uploads/cv-"))
	assert.True(t, strings.HasSuffix(cvURL, ".pdf"))

	// The file really landed on disk with the uploaded bytes.
	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(cvURL)))
	assert.NoError(t, err)
	assert.Equal(t, pdfContent, string(data))
}

func TestApply_duplicate(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser1)

	rec, resp := testutil.MakeUploadRequest("cv", "alice-cv.pdf", "application/pdf",
		[]byte(pdfContent), token, r, "/applications/jobs/"+database.TestJobA1.ID.String()+"/apply")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already applied to this job", resp["error"])
}

func TestApply_rejectsNonPDF(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, resp := testutil.MakeUploadRequest("cv", "cv.txt", "text/plain",
		[]byte("plain text resume"), token, r, "/applications/jobs/"+database.TestJobB1.ID.String()+"/apply")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only PDF files are allowed", resp["error"])
}

func TestApply_rejectsMismatchedExtension(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, resp := testutil.MakeUploadRequest("cv", "cv.exe", "application/pdf",
		[]byte(pdfContent), token, r, "/applications/jobs/"+database.TestJobB1.ID.String()+"/apply")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only PDF files are allowed", resp["error"])
}

func TestApply_missingFile(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		"/applications/jobs/"+database.TestJobB1.ID.String()+"/apply", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CV file is required", resp["error"])
}

func TestApply_tooLarge(t *testing.T) {
	// Shrink the budget to 1 KiB so a modest payload trips the limit.
	r := newApplicationRouter(t, t.TempDir(), 1024)
	token := auth.GetAccessToken(t, database.TestUser2)

	oversized := append([]byte(pdfContent), make([]byte, 4096)...)
	rec, resp := testutil.MakeUploadRequest("cv", "huge-cv.pdf", "application/pdf",
		oversized, token, r, "/applications/jobs/"+database.TestJobB1.ID.String()+"/apply")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "File too large")
}

func TestApply_unknownJob(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, resp := testutil.MakeUploadRequest("cv", "cv.pdf", "application/pdf",
		[]byte(pdfContent), token, r, "/applications/jobs/00000000-0000-0000-0000-000000000000/apply")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["error"])
}

func TestApply_companyAccountForbidden(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserA)

	rec, _ := testutil.MakeUploadRequest("cv", "cv.pdf", "application/pdf",
		[]byte(pdfContent), token, r, "/applications/jobs/"+database.TestJobB1.ID.String()+"/apply")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateStatus_owningCompany(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserA)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"status": "REVIEWING",
	}, token, r, "/applications/"+database.TestApplication1.ID.String()+"/status", http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	app := resp["application"].(map[string]interface{})
	assert.Equal(t, string(model.ApplicationStatusReviewing), app["status"])
}

func TestUpdateStatus_foreignCompanyForbidden(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserB)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"status": "REJECTED",
	}, token, r, "/applications/"+database.TestApplication1.ID.String()+"/status", http.MethodPatch)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateStatus_invalidValue(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserA)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"status": "HIRED_YESTERDAY",
	}, token, r, "/applications/"+database.TestApplication1.ID.String()+"/status", http.MethodPatch)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteApplication_strangerSeekerForbidden(t *testing.T) {
	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/applications/"+database.TestApplication1.ID.String(), http.MethodDelete)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteApplication_applicant(t *testing.T) {
	app := model.Application{
		UserID: database.TestUser2.ID,
		JobID:  database.TestJobB1.ID,
		CVURL:  "/uploads/tmp-cv.pdf",
		Status: model.ApplicationStatusPending,
	}
	assert.NoError(t, testDB.Create(&app).Error)

	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestUser2)

	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		"/applications/"+app.ID.String(), http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Application deleted successfully", resp["message"])
}

func TestDeleteApplication_owningCompany(t *testing.T) {
	app := model.Application{
		UserID: database.TestUser2.ID,
		JobID:  database.TestJobA1.ID,
		CVURL:  "/uploads/tmp-cv-2.pdf",
		Status: model.ApplicationStatusPending,
	}
	assert.NoError(t, testDB.Create(&app).Error)

	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestCompanyUserA)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/applications/"+app.ID.String(), http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteApplication_admin(t *testing.T) {
	app := model.Application{
		UserID: database.TestUser1.ID,
		JobID:  database.TestJobB1.ID,
		CVURL:  "/uploads/tmp-cv-3.pdf",
		Status: model.ApplicationStatusWithdrawn,
	}
	assert.NoError(t, testDB.Create(&app).Error)

	r := newApplicationRouter(t, t.TempDir(), 5<<20)
	token := auth.GetAccessToken(t, database.TestAdmin)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		"/applications/"+app.ID.String(), http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
}
