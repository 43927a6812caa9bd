package repository

import (
	"time"

	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// AuthTokenRepository defines the interface for bearer token records
type AuthTokenRepository interface {
	// Create persists a newly issued token
	Create(token *models.AuthToken) error

	// FindUserToken finds the record matching both user id and token string
	FindUserToken(userID uint64, token string) (*models.AuthToken, error)

	// DeleteByUserID deletes every token issued to a user
	DeleteByUserID(userID uint64) error
}

// DailyDurationStat is one row of the per-day duration aggregation.
type DailyDurationStat struct {
	Date          time.Time
	TotalDuration int64
}

// TypeStat is one row of the per-type workout count aggregation.
type TypeStat struct {
	Type  models.WorkoutType
	Count int64
}

// DashboardStats holds the dashboard totals for one user.
type DashboardStats struct {
	TotalDuration int64
	TotalCalories float64
	TotalWorkouts int64
}

// WorkoutRepository defines the interface for workout data access.
// Every read and write is scoped to the owning user id.
type WorkoutRepository interface {
	// Create creates a new workout
	Create(workout *models.Workout) error

	// FindByUserIDAndID finds a workout only when it belongs to the user
	FindByUserIDAndID(userID, id uint64) (*models.Workout, error)

	// ListByUserID lists a user's workouts, newest date first
	ListByUserID(userID uint64) ([]models.Workout, error)

	// SearchByKeyword matches the keyword case-insensitively against
	// title or description
	SearchByKeyword(userID uint64, keyword string) ([]models.Workout, error)

	// ListByUserIDAndType lists a user's workouts of one type
	ListByUserIDAndType(userID uint64, workoutType models.WorkoutType) ([]models.Workout, error)

	// ListPage lists one page of the filtered workouts together with the
	// total count before pagination. A non-nil type filter wins over the
	// keyword.
	ListPage(userID uint64, keyword string, workoutType *models.WorkoutType, params utils.PaginationParams) ([]models.Workout, int64, error)

	// Update updates a workout
	Update(workout *models.Workout) error

	// Delete deletes a workout by id
	Delete(id uint64) error

	// Stats returns the dashboard totals for a user
	Stats(userID uint64) (DashboardStats, error)

	// DailyDurationStats sums duration per workout date, oldest first.
	// A non-nil since restricts to dates on or after it.
	DailyDurationStats(userID uint64, since *time.Time) ([]DailyDurationStat, error)

	// TypeStats counts workouts per type. A non-nil since restricts to
	// dates on or after it.
	TypeStats(userID uint64, since *time.Time) ([]TypeStat, error)
}
