package model

import "time"

// Review is an inert shape like Order, migrated but not routed.
type Review struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	ProductID string `gorm:"index;not null"`
	Rating    int    `gorm:"check:rating >= 1 AND rating <= 5"`
	Comment   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
