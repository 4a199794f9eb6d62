package model

import "time"

type Category struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	Image       string

	// Self reference for subcategories. Empty means top-level.
	// Writes reject parents that don't exist or would close a cycle.
	ParentID string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
