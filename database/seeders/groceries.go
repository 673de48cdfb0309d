package seeders

import (
	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
)

func init() {
	Register("groceries", SeedGroceries)
}

// SeedGroceries fills the store catalog with a starter set of items.
// Skips itself if the catalog already has rows.
func SeedGroceries(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Grocery{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	groceries := []models.Grocery{
		{Name: "Instant Noodles", Description: "Maggi 2 minute noodles", Price: 15, Stock: 50, Category: "Snacks", Available: true},
		{Name: "Biscuits", Description: "Parle-G biscuits pack", Price: 20, Stock: 30, Category: "Snacks", Available: true},
		{Name: "Tea Bags", Description: "Lipton tea bags (25 count)", Price: 45, Stock: 20, Category: "Beverages", Available: true},
		{Name: "Coffee", Description: "Nescafe instant coffee", Price: 35, Stock: 25, Category: "Beverages", Available: true},
		{Name: "Chips", Description: "Lays potato chips", Price: 25, Stock: 40, Category: "Snacks", Available: true},
		{Name: "Chocolate", Description: "Dairy Milk chocolate", Price: 30, Stock: 35, Category: "Snacks", Available: true},
		{Name: "Energy Drink", Description: "Red Bull energy drink", Price: 125, Stock: 15, Category: "Beverages", Available: true},
		{Name: "Soap", Description: "Dove beauty soap", Price: 45, Stock: 20, Category: "Personal Care", Available: true},
		{Name: "Shampoo", Description: "Head & Shoulders shampoo sachet", Price: 15, Stock: 60, Category: "Personal Care", Available: true},
		{Name: "Toothpaste", Description: "Colgate toothpaste", Price: 65, Stock: 25, Category: "Personal Care", Available: true},
	}
	return db.Create(&groceries).Error
}
