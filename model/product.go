package model

import "time"

type Product struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"not null"`
	Price       float64
	Stock       int
	Images      StringSlice `gorm:"type:text"`
	IsActive    bool        `gorm:"default:true"`

	// Deleting a category does not cascade here, so this may go stale.
	CategoryID string `gorm:"index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
