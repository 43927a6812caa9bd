package models

import (
	"time"
)

type WorkoutType string

const (
	WorkoutTypeRunning    WorkoutType = "RUNNING"
	WorkoutTypeCycling    WorkoutType = "CYCLING"
	WorkoutTypeGym        WorkoutType = "GYM"
	WorkoutTypeBodyweight WorkoutType = "BODYWEIGHT"
	WorkoutTypePlank      WorkoutType = "PLANK"
	WorkoutTypeStretching WorkoutType = "STRETCHING"
)

// WorkoutTypes lists every recognized type, in display order.
var WorkoutTypes = []WorkoutType{
	WorkoutTypeRunning,
	WorkoutTypeCycling,
	WorkoutTypeGym,
	WorkoutTypeBodyweight,
	WorkoutTypePlank,
	WorkoutTypeStretching,
}

// ParseWorkoutType maps a raw string onto the enum. Unrecognized or empty
// input falls back to RUNNING, matching the behavior clients already rely on.
func ParseWorkoutType(s string) WorkoutType {
	for _, t := range WorkoutTypes {
		if string(t) == s {
			return t
		}
	}
	return WorkoutTypeRunning
}

// IsValidWorkoutType reports whether s names a recognized workout type.
func IsValidWorkoutType(s string) bool {
	for _, t := range WorkoutTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// CaloriesPerMinute returns the estimation multiplier for the type.
func (t WorkoutType) CaloriesPerMinute() float64 {
	switch t {
	case WorkoutTypeRunning:
		return 10
	case WorkoutTypeCycling:
		return 8
	case WorkoutTypeGym:
		return 6
	case WorkoutTypeBodyweight:
		return 5
	case WorkoutTypePlank:
		return 4
	default:
		return 3
	}
}

type Workout struct {
	ID              uint64      `gorm:"primarykey" json:"id"`
	UserID          uint64      `gorm:"not null;index" json:"user_id"`
	Title           string      `gorm:"type:varchar(255);not null" json:"title"`
	Description     string      `gorm:"type:text;not null" json:"description"`
	DurationMinutes int         `gorm:"not null" json:"duration_minutes"`
	CaloriesBurned  float64     `gorm:"not null" json:"calories_burned"`
	Date            time.Time   `gorm:"type:date;not null" json:"date"`
	Type            WorkoutType `gorm:"type:varchar(20);not null" json:"type"`
	ImagePath       string      `gorm:"type:varchar(255)" json:"image_path,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
