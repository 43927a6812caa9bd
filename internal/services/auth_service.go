package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/delcom/fittrack/internal/constants"
	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/delcom/fittrack/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrWrongPassword        = errors.New("old password does not match")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrTokenPersist         = errors.New("failed to persist auth token")
)

// AuthService handles registration, credential verification, the bearer
// token lifecycle, and profile management.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.AuthTokenRepository
	fileStore *FileStorage
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.AuthTokenRepository, fileStore *FileStorage, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		fileStore: fileStore,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a new bearer token. Any token the
// user already holds is deleted first, so at most one stays active.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.tokenRepo.DeleteByUserID(user.ID); err != nil {
		return nil, "", fmt.Errorf("failed to revoke previous tokens: %w", err)
	}

	if err := s.tokenRepo.Create(&models.AuthToken{UserID: user.ID, Token: token}); err != nil {
		return nil, "", ErrTokenPersist
	}

	return user, token, nil
}

// Logout deletes every token issued to the user.
func (s *AuthService) Logout(userID uint64) error {
	if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the editable profile fields.
type UpdateProfileInput struct {
	Name                string
	Email               string
	Bio                 string
	Preferences         string
	FavoriteWorkoutType string
	WeeklyDurationGoal  int
	DailyCalorieGoal    int
}

// UpdateProfile updates a user's profile fields.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Bio = input.Bio
	user.Preferences = input.Preferences
	user.FavoriteWorkoutType = input.FavoriteWorkoutType
	user.WeeklyDurationGoal = input.WeeklyDurationGoal
	user.DailyCalorieGoal = input.DailyCalorieGoal

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces the user's password after verifying the old one.
func (s *AuthService) UpdatePassword(userID uint64, oldPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.Password = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// UpdateProfilePhoto records a new avatar filename, deleting the replaced
// file when its name differs.
func (s *AuthService) UpdateProfilePhoto(userID uint64, filename string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if user.ProfilePhoto != "" && user.ProfilePhoto != filename {
		s.fileStore.Delete(user.ProfilePhoto)
	}

	user.ProfilePhoto = filename
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile photo: %w", err)
	}

	return user, nil
}
