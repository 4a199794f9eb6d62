package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	FullName     string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Avatar       string
	CoverImage   string
	IsAdmin      bool `gorm:"default:false"`

	IsVerified       bool `gorm:"default:false"`
	VerifyCode       string
	VerifyCodeExpiry *time.Time

	// Only the most recently issued refresh token is honored. A new
	// login or refresh overwrites it, logout clears it.
	RefreshToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}
