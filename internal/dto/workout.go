package dto

import (
	"time"

	"github.com/delcom/fittrack/internal/models"
)

// WorkoutDTO represents a workout in API responses
type WorkoutDTO struct {
	ID              uint64             `json:"id"`
	UserID          uint64             `json:"user_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DurationMinutes int                `json:"duration_minutes"`
	CaloriesBurned  float64            `json:"calories_burned"`
	Date            string             `json:"date"`
	Type            models.WorkoutType `json:"type"`
	ImagePath       string             `json:"image_path,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// DashboardStatsDTO represents the dashboard totals in API responses
type DashboardStatsDTO struct {
	TotalDuration int64   `json:"total_duration"`
	TotalCalories float64 `json:"total_calories"`
	TotalWorkouts int64   `json:"total_workouts"`
}

// ToWorkoutDTO converts a Workout model to WorkoutDTO
func ToWorkoutDTO(workout models.Workout) WorkoutDTO {
	return WorkoutDTO{
		ID:              workout.ID,
		UserID:          workout.UserID,
		Title:           workout.Title,
		Description:     workout.Description,
		DurationMinutes: workout.DurationMinutes,
		CaloriesBurned:  workout.CaloriesBurned,
		Date:            workout.Date.Format("2006-01-02"),
		Type:            workout.Type,
		ImagePath:       workout.ImagePath,
		CreatedAt:       workout.CreatedAt,
		UpdatedAt:       workout.UpdatedAt,
	}
}

// ToWorkoutDTOs converts a slice of workouts
func ToWorkoutDTOs(workouts []models.Workout) []WorkoutDTO {
	dtos := make([]WorkoutDTO, len(workouts))
	for i, w := range workouts {
		dtos[i] = ToWorkoutDTO(w)
	}
	return dtos
}
