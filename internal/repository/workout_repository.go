package repository

import (
	"strings"
	"time"

	"github.com/delcom/fittrack/internal/database"
	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/utils"
	"gorm.io/gorm"
)

// GormWorkoutRepository is a GORM implementation of WorkoutRepository
type GormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new WorkoutRepository
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &GormWorkoutRepository{db: db}
}

// Create creates a new workout
func (r *GormWorkoutRepository) Create(workout *models.Workout) error {
	return r.db.Create(workout).Error
}

// FindByUserIDAndID finds a workout only when it belongs to the user.
// A workout owned by another user is indistinguishable from a missing one.
func (r *GormWorkoutRepository) FindByUserIDAndID(userID, id uint64) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&workout).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// ListByUserID lists a user's workouts, newest date first
func (r *GormWorkoutRepository) ListByUserID(userID uint64) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := r.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

// SearchByKeyword matches the keyword case-insensitively against title or description
func (r *GormWorkoutRepository) SearchByKeyword(userID uint64, keyword string) ([]models.Workout, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	var workouts []models.Workout
	if err := r.db.Where("user_id = ? AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)",
		userID, pattern, pattern).
		Order("date DESC, created_at DESC").
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

// ListByUserIDAndType lists a user's workouts of one type
func (r *GormWorkoutRepository) ListByUserIDAndType(userID uint64, workoutType models.WorkoutType) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := r.db.Where("user_id = ? AND type = ?", userID, workoutType).
		Order("date DESC, created_at DESC").
		Find(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

// ListPage lists one page of the filtered workouts, newest date first,
// along with the total count before pagination.
func (r *GormWorkoutRepository) ListPage(userID uint64, keyword string, workoutType *models.WorkoutType, params utils.PaginationParams) ([]models.Workout, int64, error) {
	query := r.db.Model(&models.Workout{}).Where("user_id = ?", userID)

	if workoutType != nil {
		query = query.Where("type = ?", *workoutType)
	} else if kw := strings.TrimSpace(keyword); kw != "" {
		pattern := "%" + strings.ToLower(kw) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workouts []models.Workout
	if err := query.Scopes(database.Paginate(params)).
		Order("date DESC, created_at DESC").
		Find(&workouts).Error; err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

// Update updates a workout
func (r *GormWorkoutRepository) Update(workout *models.Workout) error {
	return r.db.Save(workout).Error
}

// Delete deletes a workout by id
func (r *GormWorkoutRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Workout{}, id).Error
}

// Stats returns the dashboard totals for a user. SQL SUM over zero rows is
// NULL, so the sums go through COALESCE to keep the zero defaults.
func (r *GormWorkoutRepository) Stats(userID uint64) (DashboardStats, error) {
	var stats DashboardStats

	err := r.db.Model(&models.Workout{}).
		Select("COALESCE(SUM(duration_minutes), 0) AS total_duration, " +
			"COALESCE(SUM(calories_burned), 0) AS total_calories, " +
			"COUNT(*) AS total_workouts").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}

// DailyDurationStats sums duration per workout date, oldest first.
// Rows whose date is NULL are excluded rather than emitted without a label.
func (r *GormWorkoutRepository) DailyDurationStats(userID uint64, since *time.Time) ([]DailyDurationStat, error) {
	query := r.db.Model(&models.Workout{}).
		Select("date, SUM(duration_minutes) AS total_duration").
		Where("user_id = ? AND date IS NOT NULL", userID)

	if since != nil {
		query = query.Where("date >= ?", *since)
	}

	var stats []DailyDurationStat
	if err := query.Group("date").Order("date ASC").Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// TypeStats counts workouts per type.
func (r *GormWorkoutRepository) TypeStats(userID uint64, since *time.Time) ([]TypeStat, error) {
	query := r.db.Model(&models.Workout{}).
		Select("type, COUNT(*) AS count").
		Where("user_id = ? AND type IS NOT NULL", userID)

	if since != nil {
		query = query.Where("date >= ?", *since)
	}

	var stats []TypeStat
	if err := query.Group("type").Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
