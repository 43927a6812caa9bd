package handlers

import (
	"io"

	"github.com/delcom/fittrack/internal/dto"
	"github.com/delcom/fittrack/internal/middleware"
	"github.com/delcom/fittrack/internal/response"
	"github.com/delcom/fittrack/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates the profile JSON endpoints.
type UserHandler struct {
	authService *services.AuthService
	fileStore   *services.FileStorage
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, fileStore *services.FileStorage) *UserHandler {
	return &UserHandler{
		authService: authService,
		fileStore:   fileStore,
	}
}

// GetCurrentUser returns the authenticated user's profile.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, "User profile loaded", gin.H{"user": dto.ToUserDTO(*user)})
}

// UpdateProfile updates the authenticated user's profile fields.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	type UpdateProfileRequest struct {
		Name                string `json:"name"`
		Email               string `json:"email"`
		Bio                 string `json:"bio"`
		Preferences         string `json:"preferences"`
		FavoriteWorkoutType string `json:"favorite_workout_type"`
		WeeklyDurationGoal  int    `json:"weekly_duration_goal"`
		DailyCalorieGoal    int    `json:"daily_calorie_goal"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		response.BadRequest(c, "Name and email are required")
		return
	}

	user, err := h.authService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:                req.Name,
		Email:               req.Email,
		Bio:                 req.Bio,
		Preferences:         req.Preferences,
		FavoriteWorkoutType: req.FavoriteWorkoutType,
		WeeklyDurationGoal:  req.WeeklyDurationGoal,
		DailyCalorieGoal:    req.DailyCalorieGoal,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, "Profile updated", gin.H{"user": dto.ToUserDTO(*user)})
}

// UpdatePassword replaces the password after checking the old one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	type UpdatePasswordRequest struct {
		Password        string `json:"password"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Password == "" || req.NewPassword == "" {
		response.BadRequest(c, "Password and newPassword are required")
		return
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.NewPassword {
		response.BadRequest(c, "Password confirmation does not match")
		return
	}

	if err := h.authService.UpdatePassword(userID, req.Password, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, "Password updated", nil)
}

// UpdatePhoto stores an uploaded avatar and records its filename.
func (h *UserHandler) UpdatePhoto(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "Photo file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.IsAllowedContentType(contentType) {
		response.BadRequest(c, "Unsupported image type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, "Failed to read uploaded file")
		return
	}

	filename, err := h.fileStore.StoreProfilePhoto(data, fileHeader.Filename, contentType, userID)
	if err != nil {
		response.Error(c, "Failed to store photo")
		return
	}

	user, err := h.authService.UpdateProfilePhoto(userID, filename)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, "Profile photo updated", gin.H{"profile_photo": user.ProfilePhoto})
}
