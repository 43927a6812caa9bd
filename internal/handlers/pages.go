package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/delcom/fittrack/internal/constants"
	"github.com/delcom/fittrack/internal/middleware"
	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// PageHandler renders the session-based web UI. Every page handler is a
// thin consumer of the same services the JSON API uses; anonymous visitors
// are redirected to the login form.
type PageHandler struct {
	authService    *services.AuthService
	workoutService *services.WorkoutService
	fileStore      *services.FileStorage
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(authService *services.AuthService, workoutService *services.WorkoutService, fileStore *services.FileStorage) *PageHandler {
	return &PageHandler{
		authService:    authService,
		workoutService: workoutService,
		fileStore:      fileStore,
	}
}

// Flash message handling via the session, redirect-then-render style.

func setFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.Set("flash_kind", kind)
	session.Set("flash_message", message)
	_ = session.Save()
}

func popFlash(c *gin.Context) (kind, message string) {
	session := sessions.Default(c)
	if v, ok := session.Get("flash_kind").(string); ok {
		kind = v
	}
	if v, ok := session.Get("flash_message").(string); ok {
		message = v
	}
	if kind != "" || message != "" {
		session.Delete("flash_kind")
		session.Delete("flash_message")
		_ = session.Save()
	}
	return kind, message
}

// currentUser loads the session user, or redirects to the login form.
func (h *PageHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.Redirect(http.StatusFound, "/auth/login")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		session := sessions.Default(c)
		session.Clear()
		_ = session.Save()
		c.Redirect(http.StatusFound, "/auth/login")
		return nil, false
	}

	return user, true
}

// LoginForm renders the login page.
func (h *PageHandler) LoginForm(c *gin.Context) {
	kind, message := popFlash(c)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"FlashKind":    kind,
		"FlashMessage": message,
	})
}

// Login authenticates a form post and initializes the session.
func (h *PageHandler) Login(c *gin.Context) {
	user, _, err := h.authService.Login(services.LoginInput{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		setFlash(c, "error", "Invalid email or password.")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		setFlash(c, "error", "Failed to start session.")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// RegisterForm renders the registration page.
func (h *PageHandler) RegisterForm(c *gin.Context) {
	kind, message := popFlash(c)
	c.HTML(http.StatusOK, "register.html", gin.H{
		"FlashKind":    kind,
		"FlashMessage": message,
	})
}

// Register creates an account from a form post.
func (h *PageHandler) Register(c *gin.Context) {
	_, err := h.authService.Register(services.RegisterInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		setFlash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/auth/register")
		return
	}

	setFlash(c, "success", "Account created, please log in.")
	c.Redirect(http.StatusFound, "/auth/login")
}

// Logout clears the session.
func (h *PageHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/auth/login")
}

// Dashboard renders the totals and chart series.
func (h *PageHandler) Dashboard(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	stats, err := h.workoutService.DashboardStats(user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load stats"})
		return
	}

	rng := c.Query("range")
	charts, err := h.workoutService.GetChartData(user.ID, rng)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load charts"})
		return
	}

	kind, message := popFlash(c)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":         user,
		"Stats":        stats,
		"Charts":       charts,
		"Range":        rng,
		"FlashKind":    kind,
		"FlashMessage": message,
	})
}

// Workouts renders the workout list with search and type filters.
func (h *PageHandler) Workouts(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	search := c.Query("search")
	typeStr := c.Query("type")
	workouts, err := h.workoutService.List(user.ID, search, typeStr)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load workouts"})
		return
	}

	kind, message := popFlash(c)
	c.HTML(http.StatusOK, "workouts.html", gin.H{
		"User":         user,
		"Workouts":     workouts,
		"Search":       search,
		"Type":         typeStr,
		"Types":        models.WorkoutTypes,
		"FlashKind":    kind,
		"FlashMessage": message,
	})
}

// WorkoutDetail renders one workout with its edit form.
func (h *PageHandler) WorkoutDetail(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Workout not found"})
		return
	}

	workout, err := h.workoutService.GetByID(user.ID, id)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Workout not found"})
		return
	}

	kind, message := popFlash(c)
	c.HTML(http.StatusOK, "workout_detail.html", gin.H{
		"User":         user,
		"Workout":      workout,
		"Types":        models.WorkoutTypes,
		"FlashKind":    kind,
		"FlashMessage": message,
	})
}

func formWorkoutInput(c *gin.Context) (services.WorkoutInput, error) {
	duration, _ := strconv.Atoi(c.PostForm("durationMinutes"))
	date, err := time.ParseInLocation("2006-01-02", c.PostForm("date"), time.Local)
	if err != nil {
		return services.WorkoutInput{}, err
	}
	return services.WorkoutInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		DurationMinutes: duration,
		Type:            c.PostForm("type"),
		Date:            date,
	}, nil
}

// CreateWorkout handles the add-workout form post.
func (h *PageHandler) CreateWorkout(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	input, err := formWorkoutInput(c)
	if err != nil {
		setFlash(c, "error", "Invalid date.")
		c.Redirect(http.StatusFound, "/workouts")
		return
	}

	if _, err := h.workoutService.Create(user.ID, input); err != nil {
		setFlash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/workouts")
		return
	}

	setFlash(c, "success", "Workout added.")
	c.Redirect(http.StatusFound, "/workouts")
}

// UpdateWorkout handles the edit form post.
func (h *PageHandler) UpdateWorkout(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Workout not found"})
		return
	}

	input, err := formWorkoutInput(c)
	if err != nil {
		setFlash(c, "error", "Invalid date.")
		c.Redirect(http.StatusFound, "/workouts/"+c.Param("id"))
		return
	}

	if _, err := h.workoutService.Update(user.ID, id, input); err != nil {
		setFlash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/workouts/"+c.Param("id"))
		return
	}

	setFlash(c, "success", "Workout updated.")
	c.Redirect(http.StatusFound, "/workouts/"+c.Param("id"))
}

// DeleteWorkout handles the delete form post.
func (h *PageHandler) DeleteWorkout(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err == nil {
		err = h.workoutService.Delete(user.ID, id)
	}
	if err != nil {
		setFlash(c, "error", "Workout not found.")
	} else {
		setFlash(c, "success", "Workout deleted.")
	}

	c.Redirect(http.StatusFound, "/workouts")
}

// UploadWorkoutImage handles the image form post on the detail page.
func (h *PageHandler) UploadWorkoutImage(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Workout not found"})
		return
	}

	redirect := "/workouts/" + c.Param("id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		setFlash(c, "error", "Please choose an image first.")
		c.Redirect(http.StatusFound, redirect)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.IsAllowedContentType(contentType) {
		setFlash(c, "error", "Unsupported image type.")
		c.Redirect(http.StatusFound, redirect)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		setFlash(c, "error", "Failed to read the image.")
		c.Redirect(http.StatusFound, redirect)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		setFlash(c, "error", "Failed to read the image.")
		c.Redirect(http.StatusFound, redirect)
		return
	}

	filename, err := h.fileStore.StoreWorkoutImage(data, fileHeader.Filename, contentType, id)
	if err != nil {
		setFlash(c, "error", "Failed to store the image.")
		c.Redirect(http.StatusFound, redirect)
		return
	}

	if _, err := h.workoutService.UpdateImage(user.ID, id, filename); err != nil {
		setFlash(c, "error", "Workout not found.")
	} else {
		setFlash(c, "success", "Image updated.")
	}

	c.Redirect(http.StatusFound, redirect)
}

// Profile renders the profile page with the workout count.
func (h *PageHandler) Profile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	stats, err := h.workoutService.DashboardStats(user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Failed to load profile"})
		return
	}

	kind, message := popFlash(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":          user,
		"TotalWorkouts": stats.TotalWorkouts,
		"Types":         models.WorkoutTypes,
		"FlashKind":     kind,
		"FlashMessage":  message,
	})
}

// UpdateProfile handles the profile form post.
func (h *PageHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	weeklyGoal, _ := strconv.Atoi(c.PostForm("weeklyDurationGoal"))
	calorieGoal, _ := strconv.Atoi(c.PostForm("dailyCalorieGoal"))

	_, err := h.authService.UpdateProfile(user.ID, services.UpdateProfileInput{
		Name:                c.PostForm("name"),
		Email:               c.PostForm("email"),
		Bio:                 c.PostForm("bio"),
		Preferences:         c.PostForm("preferences"),
		FavoriteWorkoutType: c.PostForm("favoriteWorkoutType"),
		WeeklyDurationGoal:  weeklyGoal,
		DailyCalorieGoal:    calorieGoal,
	})
	if err != nil {
		setFlash(c, "error", err.Error())
	} else {
		setFlash(c, "success", "Profile updated.")
	}

	c.Redirect(http.StatusFound, "/profile")
}

// UpdatePassword handles the change-password form post.
func (h *PageHandler) UpdatePassword(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	oldPassword := c.PostForm("oldPassword")
	newPassword := c.PostForm("newPassword")
	confirmPassword := c.PostForm("confirmPassword")

	if newPassword != confirmPassword {
		setFlash(c, "error", "Password confirmation does not match.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	if err := h.authService.UpdatePassword(user.ID, oldPassword, newPassword); err != nil {
		setFlash(c, "error", err.Error())
	} else {
		setFlash(c, "success", "Password changed.")
	}

	c.Redirect(http.StatusFound, "/profile")
}

// UpdatePhoto handles the avatar form post.
func (h *PageHandler) UpdatePhoto(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		setFlash(c, "error", "Please choose a photo first.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.IsAllowedContentType(contentType) {
		setFlash(c, "error", "Unsupported image type.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		setFlash(c, "error", "Failed to read the photo.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		setFlash(c, "error", "Failed to read the photo.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	filename, err := h.fileStore.StoreProfilePhoto(data, fileHeader.Filename, contentType, user.ID)
	if err != nil {
		setFlash(c, "error", "Failed to upload the photo.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	if _, err := h.authService.UpdateProfilePhoto(user.ID, filename); err != nil {
		setFlash(c, "error", "Failed to update the photo.")
	} else {
		setFlash(c, "success", "Profile photo updated.")
	}

	c.Redirect(http.StatusFound, "/profile")
}
