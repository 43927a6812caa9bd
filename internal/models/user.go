package models

import (
	"time"
)

type User struct {
	ID                  uint64    `gorm:"primarykey" json:"id"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Email               string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password            string    `gorm:"type:varchar(255);not null" json:"-"`
	Bio                 string    `gorm:"type:text" json:"bio,omitempty"`
	ProfilePhoto        string    `gorm:"type:varchar(255)" json:"profile_photo,omitempty"`
	Preferences         string    `gorm:"type:varchar(255)" json:"preferences,omitempty"`
	FavoriteWorkoutType string    `gorm:"type:varchar(50)" json:"favorite_workout_type,omitempty"`
	WeeklyDurationGoal  int       `json:"weekly_duration_goal,omitempty"`
	DailyCalorieGoal    int       `json:"daily_calorie_goal,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relations
	Workouts   []Workout   `gorm:"foreignKey:UserID" json:"-"`
	AuthTokens []AuthToken `gorm:"foreignKey:UserID" json:"-"`
}
