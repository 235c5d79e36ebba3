package user

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/auth"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/database"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/middleware"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/repository"
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

func newUserRouter() *gin.Engine {
	users := repository.NewUserRepository(testDB.DB)
	companies := repository.NewCompanyRepository(testDB.DB)
	tokens := auth.NewTokenService(testDB.Config.JWTSecret, testDB.Config.TokenTTL)

	uc := NewController(users, companies)

	r := gin.Default()
	group := r.Group("/users")
	group.Use(middleware.Authenticate(tokens, users), middleware.RequireRole(model.RoleAdmin))
	group.GET("", uc.List)
	group.GET(":id", uc.GetByID)
	group.POST("", uc.Create)
	group.PUT(":id", uc.Update)
	group.DELETE(":id", uc.Delete)
	group.GET("stats/overview", uc.Stats)
	return r
}

func TestStats(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/users/stats/overview", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), resp["total"])
	assert.Equal(t, float64(2), resp["users"])
	assert.Equal(t, float64(2), resp["companies"])
	assert.Equal(t, float64(1), resp["admins"])
	assert.Equal(t, float64(5), resp["recentRegistrations"])
}

func TestListUsers_asAdmin(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/users", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	users, ok := resp["users"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, users, 5)
}

func TestListUsers_asSeekerForbidden(t *testing.T) {
	r := newUserRouter()
	userToken := auth.GetAccessToken(t, database.TestUser1)

	rec, _ := testutil.MakeJSONRequest(nil, userToken, r, "/users", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteUser_lastAdminRefused(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r,
		"/users/"+database.TestAdmin.ID.String(), http.MethodDelete)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete the last admin user", resp["error"])

	// The account must still exist.
	var count int64
	err := testDB.Model(&model.User{}).Where("id = ?", database.TestAdmin.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateAndDeleteSecondAdmin(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name":     "Second Admin",
		"email":    "second.admin@example.com",
		"password": "Password1!",
		"role":     "ADMIN",
	}, adminToken, r, "/users", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	created, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "ADMIN", created["role"])

	// With two admins around, deleting one passes the guard.
	rec, resp = testutil.MakeJSONRequest(nil, adminToken, r,
		"/users/"+created["id"].(string), http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", resp["message"])
}

func TestCreateUser_duplicateEmail(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name":     "Clone",
		"email":    database.TestUser2.Email,
		"password": "Password1!",
		"role":     "USER",
	}, adminToken, r, "/users", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User with this email already exists", resp["error"])
}

func TestCreateUser_unknownCompany(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"name":      "Orphan Recruiter",
		"email":     "orphan@example.com",
		"password":  "Password1!",
		"role":      "COMPANY",
		"companyId": "00000000-0000-0000-0000-000000000000",
	}, adminToken, r, "/users", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_partial(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name": "Alice Renamed",
	}, adminToken, r, "/users/"+database.TestUser1.ID.String(), http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	updated, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Alice Renamed", updated["name"])
	// Untouched fields survive a partial update.
	assert.Equal(t, database.TestUser1.Email, updated["email"])
}

func TestGetUser_notFound(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, _ := testutil.MakeJSONRequest(nil, adminToken, r,
		"/users/00000000-0000-0000-0000-000000000000", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUser_invalidID(t *testing.T) {
	r := newUserRouter()
	adminToken := auth.GetAccessToken(t, database.TestAdmin)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/users/not-a-uuid", http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID", resp["error"])
}
