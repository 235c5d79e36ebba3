package utilities

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("Password1!")
	assert.NoError(t, err)
	assert.NotEqual(t, "Password1!", hashed)

	assert.True(t, VerifyPassword("Password1!", hashed))
	assert.False(t, VerifyPassword("password1!", hashed))
}

func TestExtractUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := ExtractUser(c)
	assert.Error(t, err)

	want := model.User{Name: "Alice", Role: model.RoleUser}
	c.Set("user", want)

	got, err := ExtractUser(c)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContains(t *testing.T) {
	roles := []model.Role{model.RoleAdmin, model.RoleCompany}
	assert.True(t, Contains(roles, model.RoleAdmin))
	assert.False(t, Contains(roles, model.RoleUser))
}

func TestFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type payload struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role" binding:"required,oneof=USER COMPANY"`
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/",
		strings.NewReader(`{"email":"not-an-email","role":"ROOT"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	err := c.ShouldBindJSON(&p)
	assert.Error(t, err)

	resp := NewValidationErrorResponse(err)
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Len(t, resp.Details, 2)

	fields := map[string]string{}
	for _, fe := range resp.Details {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "Valid email is required", fields["email"])
	assert.Contains(t, fields["role"], "must be one of")
}

func TestFieldErrors_malformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var p struct {
		Name string `json:"name" binding:"required"`
	}
	err := c.ShouldBindJSON(&p)
	assert.Error(t, err)

	details := FieldErrors(err)
	assert.Len(t, details, 1)
	assert.Equal(t, "body", details[0].Field)
}
