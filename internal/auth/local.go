package auth

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

// Controller holds the dependencies for the credential endpoints.
type Controller struct {
	Users     repository.UserRepository
	Companies repository.CompanyRepository
	Tokens    *TokenService
}

// NewController creates a new auth Controller.
func NewController(users repository.UserRepository, companies repository.CompanyRepository, tokens *TokenService) *Controller {
	return &Controller{
		Users:     users,
		Companies: companies,
		Tokens:    tokens,
	}
}

type registerInfo struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role" binding:"required,oneof=USER COMPANY"`
	CompanyID *string `json:"companyId" binding:"omitempty,uuid"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// tokenResponse is the body returned by register and login.
type tokenResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
}

// Register handles self-registration for job seekers and company accounts.
// Admin accounts are only created through the admin user CRUD.
// @Summary Register a new account
// @Description Role must be USER or COMPANY. COMPANY accounts must name an existing company via companyId.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Registration data"
// @Success 201 {object} tokenResponse "Account created"
// @Failure 400 {object} utilities.ValidationErrorResponse "Malformed input or email already taken"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database or hashing error"
// @Router /auth/register [post]
func (ac *Controller) Register(c *gin.Context) {
	var info registerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	role := model.Role(info.Role)

	var companyID *uuid.UUID
	if role == model.RoleCompany {
		if info.CompanyID == nil {
			c.JSON(http.StatusBadRequest, utilities.ValidationErrorResponse{
				Error: "Validation failed",
				Details: []utilities.FieldError{
					{Field: "companyId", Message: "companyId is required for COMPANY accounts"},
				},
			})
			return
		}
		id, err := uuid.Parse(*info.CompanyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ValidationErrorResponse{
				Error: "Validation failed",
				Details: []utilities.FieldError{
					{Field: "companyId", Message: "companyId must be a valid UUID"},
				},
			})
			return
		}
		if _, err := ac.Companies.FindByID(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to verify company"})
			return
		}
		companyID = &id
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
		Role:      role,
		CompanyID: companyID,
	}
	if err := ac.Users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "User with this email already exists"})
			return
		}
		log.Printf("Register: failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to create user"})
		return
	}

	token, err := ac.Tokens.Issue(user.ID, user.Role, user.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{
		Message: "User registered successfully",
		User:    user,
		Token:   token,
	})
}

// Login verifies credentials and hands out a fresh access token.
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} tokenResponse "Logged in"
// @Failure 400 {object} utilities.ValidationErrorResponse "Malformed input"
// @Failure 401 {object} utilities.ErrorResponse "Email not found or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (ac *Controller) Login(c *gin.Context) {
	var info loginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.NewValidationErrorResponse(err))
		return
	}

	user, err := ac.Users.FindByEmail(info.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "Email or password is incorrect"})
		return
	case err != nil:
		log.Printf("Login: failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to retrieve user data"})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "Email or password is incorrect"})
		return
	}

	token, err := ac.Tokens.Issue(user.ID, user.Role, user.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		Message: "Login successful",
		User:    *user,
		Token:   token,
	})
}

// Me returns the account behind the presented token.
// @Summary Get the authenticated account
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (ac *Controller) Me(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
