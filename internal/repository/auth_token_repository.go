package repository

import (
	"github.com/delcom/fittrack/internal/models"
	"gorm.io/gorm"
)

// GormAuthTokenRepository is a GORM implementation of AuthTokenRepository
type GormAuthTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository creates a new AuthTokenRepository
func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &GormAuthTokenRepository{db: db}
}

// Create persists a newly issued token
func (r *GormAuthTokenRepository) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

// FindUserToken finds the record matching both user id and token string
func (r *GormAuthTokenRepository) FindUserToken(userID uint64, token string) (*models.AuthToken, error) {
	var authToken models.AuthToken
	if err := r.db.Where("user_id = ? AND token = ?", userID, token).
		First(&authToken).Error; err != nil {
		return nil, err
	}
	return &authToken, nil
}

// DeleteByUserID deletes every token issued to a user
func (r *GormAuthTokenRepository) DeleteByUserID(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
