package dto

import (
	"time"

	"github.com/delcom/fittrack/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                  uint64    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Bio                 string    `json:"bio,omitempty"`
	ProfilePhoto        string    `json:"profile_photo,omitempty"`
	Preferences         string    `json:"preferences,omitempty"`
	FavoriteWorkoutType string    `json:"favorite_workout_type,omitempty"`
	WeeklyDurationGoal  int       `json:"weekly_duration_goal,omitempty"`
	DailyCalorieGoal    int       `json:"daily_calorie_goal,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Bio:                 user.Bio,
		ProfilePhoto:        user.ProfilePhoto,
		Preferences:         user.Preferences,
		FavoriteWorkoutType: user.FavoriteWorkoutType,
		WeeklyDurationGoal:  user.WeeklyDurationGoal,
		DailyCalorieGoal:    user.DailyCalorieGoal,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}
