package handlers

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/delcom/fittrack/internal/dto"
	"github.com/delcom/fittrack/internal/middleware"
	"github.com/delcom/fittrack/internal/response"
	"github.com/delcom/fittrack/internal/services"
	"github.com/delcom/fittrack/internal/utils"
	"github.com/gin-gonic/gin"
)

// WorkoutHandler coordinates the workout JSON endpoints.
type WorkoutHandler struct {
	workoutService *services.WorkoutService
	fileStore      *services.FileStorage
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService *services.WorkoutService, fileStore *services.FileStorage) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		fileStore:      fileStore,
	}
}

// workoutRequest is the JSON body for create and update. Calories are never
// accepted from the client.
type workoutRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	Type            string `json:"type"`
	Date            string `json:"date"`
}

func (r workoutRequest) toInput() (services.WorkoutInput, error) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, time.Local)
	if err != nil {
		return services.WorkoutInput{}, err
	}
	return services.WorkoutInput{
		Title:           r.Title,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Type:            r.Type,
		Date:            date,
	}, nil
}

// Create adds a new workout for the current user.
func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Date == "" {
		response.BadRequest(c, "Date is required")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	workout, err := h.workoutService.Create(userID, input)
	if err != nil {
		respondWorkoutError(c, err)
		return
	}

	response.Success(c, "Workout created", gin.H{"id": workout.ID})
}

// List returns the user's workouts, optionally filtered by keyword or type.
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	workouts, total, err := h.workoutService.ListPage(userID, c.Query("search"), c.Query("type"), params)
	if err != nil {
		response.Error(c, "Failed to fetch workouts")
		return
	}

	response.Success(c, "Workouts loaded", gin.H{
		"workouts": dto.ToWorkoutDTOs(workouts),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one workout; a foreign or missing id is 404 either way.
func (h *WorkoutHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid workout id")
		return
	}

	workout, err := h.workoutService.GetByID(userID, id)
	if err != nil {
		respondWorkoutError(c, err)
		return
	}

	response.Success(c, "Workout loaded", gin.H{"workout": dto.ToWorkoutDTO(*workout)})
}

// Update rewrites an owned workout.
func (h *WorkoutHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid workout id")
		return
	}

	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Date == "" {
		response.BadRequest(c, "Date is required")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	if _, err := h.workoutService.Update(userID, id, input); err != nil {
		respondWorkoutError(c, err)
		return
	}

	response.Success(c, "Workout updated", nil)
}

// Delete removes an owned workout and its image file.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid workout id")
		return
	}

	if err := h.workoutService.Delete(userID, id); err != nil {
		respondWorkoutError(c, err)
		return
	}

	response.Success(c, "Workout deleted", nil)
}

// UploadImage stores a workout image and records its filename.
func (h *WorkoutHandler) UploadImage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid workout id")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.IsAllowedContentType(contentType) {
		response.BadRequest(c, "Unsupported image type")
		return
	}

	// The workout must exist and be owned before bytes hit the disk.
	if _, err := h.workoutService.GetByID(userID, id); err != nil {
		respondWorkoutError(c, err)
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

	filename, err := h.fileStore.StoreWorkoutImage(data, fileHeader.Filename, contentType, id)
	if err != nil {
		response.Error(c, "Failed to store image")
		return
	}

	workout, err := h.workoutService.UpdateImage(userID, id, filename)
	if err != nil {
		respondWorkoutError(c, err)
		return
	}

	response.Success(c, "Workout image updated", gin.H{"image_path": workout.ImagePath})
}

// Stats returns the dashboard totals.
func (h *WorkoutHandler) Stats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	stats, err := h.workoutService.DashboardStats(userID)
	if err != nil {
		response.Error(c, "Failed to load stats")
		return
	}

	response.Success(c, "Dashboard stats loaded", gin.H{"stats": dto.DashboardStatsDTO{
		TotalDuration: stats.TotalDuration,
		TotalCalories: stats.TotalCalories,
		TotalWorkouts: stats.TotalWorkouts,
	}})
}

// Charts returns the daily-duration and per-type series, windowed by the
// optional range query (week, month, 3months).
func (h *WorkoutHandler) Charts(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Forbidden(c, "")
		return
	}

	data, err := h.workoutService.GetChartData(userID, c.Query("range"))
	if err != nil {
		response.Error(c, "Failed to load chart data")
		return
	}

	response.Success(c, "Chart data loaded", data)
}

func parseIDParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func respondWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkoutNotFound):
		response.NotFound(c, "Workout not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidDuration),
		errors.Is(err, services.ErrTypeRequired),
		errors.Is(err, services.ErrDateInFuture):
		response.BadRequest(c, err.Error())
	default:
		response.Error(c, "Internal server error")
	}
}
