package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/delcom/fittrack/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrTypeRequired        = errors.New("type is required")
	ErrDateInFuture        = errors.New("date must not be in the future")
)

// WorkoutService handles workout business logic: CRUD, calorie estimation,
// and the dashboard/chart aggregations.
type WorkoutService struct {
	workoutRepo repository.WorkoutRepository
	fileStore   *FileStorage
}

// NewWorkoutService creates a new WorkoutService
func NewWorkoutService(workoutRepo repository.WorkoutRepository, fileStore *FileStorage) *WorkoutService {
	return &WorkoutService{
		workoutRepo: workoutRepo,
		fileStore:   fileStore,
	}
}

// WorkoutInput represents the user-supplied workout fields. Calories are
// derived, never accepted from the client.
type WorkoutInput struct {
	Title           string
	Description     string
	DurationMinutes int
	Type            string
	Date            time.Time
}

func validateWorkoutInput(input WorkoutInput) error {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return ErrTitleRequired
	case strings.TrimSpace(input.Description) == "":
		return ErrDescriptionRequired
	case input.DurationMinutes <= 0:
		return ErrInvalidDuration
	case strings.TrimSpace(input.Type) == "":
		return ErrTypeRequired
	case input.Date.IsZero():
		return fmt.Errorf("date is required")
	case input.Date.After(endOfToday()):
		return ErrDateInFuture
	}
	return nil
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// CalculateCalories applies the fixed per-minute multiplier table.
func CalculateCalories(workoutType models.WorkoutType, durationMinutes int) float64 {
	return float64(durationMinutes) * workoutType.CaloriesPerMinute()
}

// Create validates the input and stores a new workout for the user.
// An unrecognized type string falls back to RUNNING, see ParseWorkoutType.
func (s *WorkoutService) Create(userID uint64, input WorkoutInput) (*models.Workout, error) {
	if err := validateWorkoutInput(input); err != nil {
		return nil, err
	}

	workoutType := models.ParseWorkoutType(input.Type)
	workout := &models.Workout{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  CalculateCalories(workoutType, input.DurationMinutes),
		Date:            input.Date,
		Type:            workoutType,
	}

	if err := s.workoutRepo.Create(workout); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	return workout, nil
}

// Update rewrites an owned workout's fields, recomputing calories.
func (s *WorkoutService) Update(userID, id uint64, input WorkoutInput) (*models.Workout, error) {
	if err := validateWorkoutInput(input); err != nil {
		return nil, err
	}

	workout, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	workoutType := models.ParseWorkoutType(input.Type)
	workout.Title = input.Title
	workout.Description = input.Description
	workout.DurationMinutes = input.DurationMinutes
	workout.CaloriesBurned = CalculateCalories(workoutType, input.DurationMinutes)
	workout.Type = workoutType
	workout.Date = input.Date

	if err := s.workoutRepo.Update(workout); err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}

	return workout, nil
}

// List returns the user's workouts. A recognized type filter wins over the
// keyword search; an unrecognized type is ignored and the remaining filters
// apply.
func (s *WorkoutService) List(userID uint64, search, typeStr string) ([]models.Workout, error) {
	if typeStr != "" && models.IsValidWorkoutType(typeStr) {
		return s.workoutRepo.ListByUserIDAndType(userID, models.WorkoutType(typeStr))
	}
	if strings.TrimSpace(search) != "" {
		return s.workoutRepo.SearchByKeyword(userID, search)
	}
	return s.workoutRepo.ListByUserID(userID)
}

// ListPage returns one page of the filtered workouts plus the total count.
// Filter priority matches List.
func (s *WorkoutService) ListPage(userID uint64, search, typeStr string, params utils.PaginationParams) ([]models.Workout, int64, error) {
	var workoutType *models.WorkoutType
	if typeStr != "" && models.IsValidWorkoutType(typeStr) {
		wt := models.WorkoutType(typeStr)
		workoutType = &wt
	}
	return s.workoutRepo.ListPage(userID, search, workoutType, params)
}

// GetByID returns a workout only when it belongs to the user.
func (s *WorkoutService) GetByID(userID, id uint64) (*models.Workout, error) {
	return s.getOwned(userID, id)
}

// Delete removes an owned workout, deleting its image file first when one
// is attached. A missing or foreign workout fails with no side effects.
func (s *WorkoutService) Delete(userID, id uint64) error {
	workout, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}

	if workout.ImagePath != "" {
		s.fileStore.Delete(workout.ImagePath)
	}

	if err := s.workoutRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil
}

// UpdateImage records a new image filename on an owned workout, deleting
// the replaced file when its name differs.
func (s *WorkoutService) UpdateImage(userID, id uint64, filename string) (*models.Workout, error) {
	workout, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if workout.ImagePath != "" && workout.ImagePath != filename {
		s.fileStore.Delete(workout.ImagePath)
	}

	workout.ImagePath = filename
	if err := s.workoutRepo.Update(workout); err != nil {
		return nil, fmt.Errorf("failed to update workout image: %w", err)
	}

	return workout, nil
}

// DashboardStats returns the user's totals; empty aggregates are zero.
func (s *WorkoutService) DashboardStats(userID uint64) (repository.DashboardStats, error) {
	stats, err := s.workoutRepo.Stats(userID)
	if err != nil {
		return repository.DashboardStats{}, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return stats, nil
}

// ChartPoint is one labeled value of a chart series. Labels and values are
// paired records, never parallel lists.
type ChartPoint struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// ChartData holds both chart series for a user.
type ChartData struct {
	Duration []ChartPoint `json:"duration"`
	Type     []ChartPoint `json:"type"`
}

// chartWindowStart maps a range keyword onto a trailing-window start date.
// Unknown or empty keywords mean no window.
func chartWindowStart(rng string) *time.Time {
	now := time.Now()
	var since time.Time
	switch rng {
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	case "3months":
		since = now.AddDate(0, -3, 0)
	default:
		return nil
	}
	return &since
}

// GetChartData returns the daily-duration and per-type series, optionally
// restricted to a trailing window.
func (s *WorkoutService) GetChartData(userID uint64, rng string) (*ChartData, error) {
	since := chartWindowStart(rng)

	dailyStats, err := s.workoutRepo.DailyDurationStats(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily duration stats: %w", err)
	}

	typeStats, err := s.workoutRepo.TypeStats(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load type stats: %w", err)
	}

	data := &ChartData{
		Duration: make([]ChartPoint, 0, len(dailyStats)),
		Type:     make([]ChartPoint, 0, len(typeStats)),
	}

	for _, row := range dailyStats {
		data.Duration = append(data.Duration, ChartPoint{
			Label: row.Date.Format("02 Jan"),
			Value: row.TotalDuration,
		})
	}

	for _, row := range typeStats {
		data.Type = append(data.Type, ChartPoint{
			Label: string(row.Type),
			Value: row.Count,
		})
	}

	return data, nil
}

func (s *WorkoutService) getOwned(userID, id uint64) (*models.Workout, error) {
	workout, err := s.workoutRepo.FindByUserIDAndID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("failed to find workout: %w", err)
	}
	return workout, nil
}
