package services

import (
	"testing"
	"time"

	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.AuthToken{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	fileStore := NewFileStorage(t.TempDir())

	return NewAuthService(userRepo, tokenRepo, fileStore, "test-secret", time.Hour), db
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "budi@example.com", user.Email)

	// Password is stored hashed, never verbatim.
	require.NotEqual(t, "supersecret", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	input := RegisterInput{Name: "Budi", Email: "budi@example.com", Password: "supersecret"}
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupAuthService(t)

	registered, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(LoginInput{Email: "budi@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "budi@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_ReplacesPreviousToken(t *testing.T) {
	svc, db := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, first, err := svc.Login(LoginInput{Email: "budi@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, second, err := svc.Login(LoginInput{Email: "budi@example.com", Password: "supersecret"})
	require.NoError(t, err)

	var tokens []models.AuthToken
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&tokens).Error)
	require.Len(t, tokens, 1)
	require.Equal(t, second, tokens[0].Token)
	require.NotEqual(t, first, tokens[0].Token)
}

func TestAuthService_Logout(t *testing.T) {
	svc, db := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "budi@example.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))

	var count int64
	require.NoError(t, db.Model(&models.AuthToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(user.ID, "wrongpass", "anothersecret")
	require.ErrorIs(t, err, ErrWrongPassword)

	err = svc.UpdatePassword(user.ID, "supersecret", "tiny")
	require.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.UpdatePassword(user.ID, "supersecret", "anothersecret")
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "budi@example.com", Password: "anothersecret"})
	require.NoError(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{
		Name:                "Budi Santoso",
		Email:               "budi@example.com",
		Bio:                 "Morning runner",
		FavoriteWorkoutType: "RUNNING",
		WeeklyDurationGoal:  150,
		DailyCalorieGoal:    500,
	})
	require.NoError(t, err)
	require.Equal(t, "Budi Santoso", updated.Name)
	require.Equal(t, "Morning runner", updated.Bio)
	require.Equal(t, 150, updated.WeeklyDurationGoal)
}
