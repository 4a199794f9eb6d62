package model

import "time"

// Order and OrderItem are inert shapes for now. They're migrated so the
// schema is ready, but no routes operate on them yet.

const (
	OrderPending   = "Pending"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

type Order struct {
	ID              string `gorm:"primaryKey"`
	UserID          string `gorm:"index;not null"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
	TotalAmount     float64
	ShippingAddress string `gorm:"not null"`
	PaymentMethod   string `gorm:"not null"`
	OrderStatus     string `gorm:"default:Pending"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"index"`
	ProductID string `gorm:"not null"`
	Quantity  int
	Price     float64
}
