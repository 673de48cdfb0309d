package models

import "gorm.io/gorm"

// Purchase statuses.
const (
	PurchasePending   = "PENDING"
	PurchaseConfirmed = "CONFIRMED"
	PurchaseDelivered = "DELIVERED"
)

// Grocery is a store item students can buy against their mess account.
type Grocery struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Category    string  `gorm:"size:100" json:"category"`
	Available   bool    `gorm:"not null;default:true" json:"available"`
}

// Purchase charges a grocery to a student's account. TotalPrice is the
// grocery price at purchase time multiplied by quantity and is never
// recomputed, so history survives later price changes.
type Purchase struct {
	gorm.Model
	StudentID  uint    `gorm:"not null;index" json:"student_id"`
	Student    Student `json:"-"`
	GroceryID  uint    `gorm:"not null;index" json:"grocery_id"`
	Grocery    Grocery `json:"grocery"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
	Status     string  `gorm:"size:50;not null;default:PENDING" json:"status"`
}
