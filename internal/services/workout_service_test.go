package services

import (
	"os"
	"testing"
	"time"

	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/delcom/fittrack/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWorkoutService(t *testing.T) (*WorkoutService, *FileStorage, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Workout{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	fileStore := NewFileStorage(t.TempDir())
	svc := NewWorkoutService(repository.NewWorkoutRepository(db), fileStore)
	return svc, fileStore, db
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}

func validInput() WorkoutInput {
	return WorkoutInput{
		Title:           "Lari Pagi",
		Description:     "Morning run around the park",
		DurationMinutes: 30,
		Type:            "RUNNING",
		Date:            yesterday(),
	}
}

func TestWorkoutService_Create(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	workout, err := svc.Create(1, validInput())
	require.NoError(t, err)
	require.NotZero(t, workout.ID)
	require.Equal(t, models.WorkoutTypeRunning, workout.Type)
	require.Equal(t, 300.0, workout.CaloriesBurned)
}

func TestWorkoutService_Create_InvalidTypeFallsBackToRunning(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	input := validInput()
	input.Type = "INVALID_TYPE"
	workout, err := svc.Create(1, input)
	require.NoError(t, err)
	require.Equal(t, models.WorkoutTypeRunning, workout.Type)
	require.Equal(t, 300.0, workout.CaloriesBurned)
}

func TestWorkoutService_Create_Validation(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	cases := []struct {
		name   string
		mutate func(*WorkoutInput)
		want   error
	}{
		{"empty title", func(in *WorkoutInput) { in.Title = "  " }, ErrTitleRequired},
		{"empty description", func(in *WorkoutInput) { in.Description = "" }, ErrDescriptionRequired},
		{"zero duration", func(in *WorkoutInput) { in.DurationMinutes = 0 }, ErrInvalidDuration},
		{"negative duration", func(in *WorkoutInput) { in.DurationMinutes = -5 }, ErrInvalidDuration},
		{"empty type", func(in *WorkoutInput) { in.Type = "" }, ErrTypeRequired},
		{"future date", func(in *WorkoutInput) { in.Date = time.Now().AddDate(0, 0, 2) }, ErrDateInFuture},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(1, input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWorkoutService_Create_TodayAllowed(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	input := validInput()
	input.Date = time.Now()
	_, err := svc.Create(1, input)
	require.NoError(t, err)
}

func TestWorkoutService_Update_RecomputesCalories(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	workout, err := svc.Create(1, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Type = "CYCLING"
	input.DurationMinutes = 45
	updated, err := svc.Update(1, workout.ID, input)
	require.NoError(t, err)
	require.Equal(t, models.WorkoutTypeCycling, updated.Type)
	require.Equal(t, 360.0, updated.CaloriesBurned)
}

func TestWorkoutService_OwnerScoping(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	workout, err := svc.Create(1, validInput())
	require.NoError(t, err)

	_, err = svc.GetByID(2, workout.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)

	_, err = svc.Update(2, workout.ID, validInput())
	require.ErrorIs(t, err, ErrWorkoutNotFound)

	err = svc.Delete(2, workout.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)

	// The owner still sees it untouched.
	got, err := svc.GetByID(1, workout.ID)
	require.NoError(t, err)
	require.Equal(t, workout.ID, got.ID)
}

func TestWorkoutService_List_Filters(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	run := validInput()
	_, err := svc.Create(1, run)
	require.NoError(t, err)

	ride := validInput()
	ride.Title = "Evening Ride"
	ride.Description = "Easy spin home"
	ride.Type = "CYCLING"
	_, err = svc.Create(1, ride)
	require.NoError(t, err)

	_, err = svc.Create(2, validInput())
	require.NoError(t, err)

	all, err := svc.List(1, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	byType, err := svc.List(1, "", "CYCLING")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "Evening Ride", byType[0].Title)

	// Case-insensitive keyword search over title and description.
	bySearch, err := svc.List(1, "lari", "")
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.Equal(t, "Lari Pagi", bySearch[0].Title)

	// A recognized type filter wins over the keyword.
	both, err := svc.List(1, "lari", "CYCLING")
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, "Evening Ride", both[0].Title)

	// An unrecognized type is ignored.
	ignored, err := svc.List(1, "", "SWIMMING")
	require.NoError(t, err)
	require.Len(t, ignored, 2)
}

func TestWorkoutService_ListPage(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	for i := 0; i < 5; i++ {
		input := validInput()
		input.Date = time.Now().AddDate(0, 0, -1-i)
		_, err := svc.Create(1, input)
		require.NoError(t, err)
	}

	page1, total, err := svc.ListPage(1, "", "", utils.PaginationParams{Page: 1, Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, total, err := svc.ListPage(1, "", "", utils.PaginationParams{Page: 3, Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, page3, 1)

	// Newest date first: page boundaries never overlap.
	require.True(t, page1[0].Date.After(page3[0].Date))
}

func TestWorkoutService_Delete_RemovesImageFile(t *testing.T) {
	svc, fileStore, _ := setupWorkoutService(t)

	workout, err := svc.Create(1, validInput())
	require.NoError(t, err)

	filename, err := fileStore.StoreWorkoutImage([]byte("fake image"), "run.jpg", "image/jpeg", workout.ID)
	require.NoError(t, err)
	_, err = svc.UpdateImage(1, workout.ID, filename)
	require.NoError(t, err)
	require.True(t, fileStore.Exists(filename))

	require.NoError(t, svc.Delete(1, workout.ID))
	require.False(t, fileStore.Exists(filename))

	_, err = svc.GetByID(1, workout.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutService_DashboardStats(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	// No rows yet: totals are zero, not an error.
	stats, err := svc.DashboardStats(1)
	require.NoError(t, err)
	require.Zero(t, stats.TotalWorkouts)
	require.Zero(t, stats.TotalDuration)
	require.Zero(t, stats.TotalCalories)

	_, err = svc.Create(1, validInput())
	require.NoError(t, err)

	ride := validInput()
	ride.Type = "CYCLING"
	ride.DurationMinutes = 45
	_, err = svc.Create(1, ride)
	require.NoError(t, err)

	_, err = svc.Create(2, validInput())
	require.NoError(t, err)

	stats, err = svc.DashboardStats(1)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalWorkouts)
	require.Equal(t, int64(75), stats.TotalDuration)
	require.Equal(t, 660.0, stats.TotalCalories)
}

func TestWorkoutService_GetChartData(t *testing.T) {
	svc, _, _ := setupWorkoutService(t)

	older := validInput()
	older.Date = time.Now().AddDate(0, 0, -20)
	_, err := svc.Create(1, older)
	require.NoError(t, err)

	recent := validInput()
	recent.Type = "CYCLING"
	recent.DurationMinutes = 45
	_, err = svc.Create(1, recent)
	require.NoError(t, err)

	all, err := svc.GetChartData(1, "")
	require.NoError(t, err)
	require.Len(t, all.Duration, 2)
	require.Len(t, all.Type, 2)

	// Every point carries its own label; labels use day-month form.
	for _, p := range all.Duration {
		require.NotEmpty(t, p.Label)
	}

	week, err := svc.GetChartData(1, "week")
	require.NoError(t, err)
	require.Len(t, week.Duration, 1)
	require.Len(t, week.Type, 1)
	require.Equal(t, "CYCLING", week.Type[0].Label)
	require.Equal(t, int64(45), week.Duration[0].Value)

	month, err := svc.GetChartData(1, "month")
	require.NoError(t, err)
	require.Len(t, month.Duration, 2)

	// Unknown range keywords behave like no window.
	unknown, err := svc.GetChartData(1, "fortnight")
	require.NoError(t, err)
	require.Len(t, unknown.Duration, 2)
}

func TestFileStorage_StoreAndLoad(t *testing.T) {
	fileStore := NewFileStorage(t.TempDir())

	filename, err := fileStore.StoreWorkoutImage([]byte("payload"), "run.png", "image/png", 7)
	require.NoError(t, err)
	require.Equal(t, "cover_7.png", filename)

	data, err := fileStore.Load(filename)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)

	avatar, err := fileStore.StoreProfilePhoto([]byte("avatar"), "", "image/jpeg", 3)
	require.NoError(t, err)
	require.Equal(t, "profile_3.jpg", avatar)
}

func TestFileStorage_Delete_Idempotent(t *testing.T) {
	fileStore := NewFileStorage(t.TempDir())

	filename, err := fileStore.StoreWorkoutImage([]byte("x"), "a.gif", "image/gif", 1)
	require.NoError(t, err)

	require.True(t, fileStore.Delete(filename))
	require.False(t, fileStore.Delete(filename))
	require.False(t, fileStore.Exists(filename))
}

func TestFileStorage_PathStaysUnderRoot(t *testing.T) {
	dir := t.TempDir()
	fileStore := NewFileStorage(dir)

	outside := fileStore.Path("../../etc/passwd")
	require.Equal(t, dir+string(os.PathSeparator)+"passwd", outside)
}

func TestIsAllowedContentType(t *testing.T) {
	require.True(t, IsAllowedContentType("image/jpeg"))
	require.True(t, IsAllowedContentType("IMAGE/PNG"))
	require.True(t, IsAllowedContentType("image/webp"))
	require.False(t, IsAllowedContentType("application/pdf"))
	require.False(t, IsAllowedContentType(""))
}
