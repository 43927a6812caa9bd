package models

import "time"

// AuthToken is one issued bearer credential. A re-login deletes all of a
// user's rows before inserting the new one, so at most one stays active.
type AuthToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"type:text;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
