package handlers

import (
	"errors"
	"fmt"

	"github.com/delcom/fittrack/internal/constants"
	"github.com/delcom/fittrack/internal/middleware"
	"github.com/delcom/fittrack/internal/response"
	"github.com/delcom/fittrack/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates the authentication JSON endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	switch {
	case req.Name == "":
		response.BadRequest(c, "Name is required")
		return
	case req.Email == "":
		response.BadRequest(c, "Email is required")
		return
	case req.Password == "":
		response.BadRequest(c, "Password is required")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, "User registered", gin.H{"id": user.ID})
}

// Login verifies credentials and returns a fresh bearer token. Any token
// issued by a previous login stops working.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		response.BadRequest(c, "Email and password are required")
		return
	}

	_, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, "Login successful", gin.H{"authToken": token})
}

// Logout revokes every bearer token of the current user.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		response.Error(c, "Failed to logout")
		return
	}

	response.Success(c, "Logged out", nil)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		response.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTokenPersist),
		errors.Is(err, services.ErrFailedToHashPassword):
		response.Error(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}
