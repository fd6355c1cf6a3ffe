package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical shopper identity.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     string    `gorm:"column:last_name;not null"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time

	// Email verification state. The token is single-use: a successful
	// verification clears both the token and its expiry.
	VerificationToken *string    `gorm:"column:verification_token;uniqueIndex"`
	TokenExpiry       *time.Time `gorm:"column:token_expiry"`
	IsVerified        bool       `gorm:"column:is_verified;not null;default:false"`
	VerifiedAt        *time.Time `gorm:"column:verified_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
