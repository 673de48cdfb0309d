package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Meal types served by the mess.
const (
	MealBreakfast = "BREAKFAST"
	MealLunch     = "LUNCH"
	MealDinner    = "DINNER"
)

// MealTypes lists all valid meal types in serving order.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner}

// mealPrices is the fixed per-plate price table used when a day's Meal
// row is created on demand.
var mealPrices = map[string]float64{
	MealBreakfast: 30,
	MealLunch:     50,
	MealDinner:    45,
}

// MealPrice returns the fixed price for a meal type, or 0 for an
// unknown type.
func MealPrice(mealType string) float64 {
	return mealPrices[mealType]
}

// ValidMealType reports whether t is one of the known meal types.
func ValidMealType(t string) bool {
	_, ok := mealPrices[t]
	return ok
}

// MealDisplayName turns "BREAKFAST" into "Breakfast".
func MealDisplayName(mealType string) string {
	lower := strings.ToLower(mealType)
	if lower == "" {
		return ""
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Meal is one served meal on one calendar day. At most one row per
// (type, day) is expected; rows are created by find-or-create when the
// first student is marked or confirmed for that slot.
type Meal struct {
	gorm.Model
	Name        string    `gorm:"size:100;not null" json:"name"`
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"` // local midnight
	Price       float64   `gorm:"not null" json:"price"`
	Available   bool      `gorm:"not null;default:true" json:"available"`

	MealRecords []MealRecord `json:"-"`
}

// MealRecord is a billed, consumed meal: its presence means the
// student's account was charged Meal.Price. The composite unique index
// backs up the application-level read-before-write check.
type MealRecord struct {
	gorm.Model
	StudentID uint      `gorm:"not null;uniqueIndex:idx_meal_records_student_meal" json:"student_id"`
	Student   Student   `json:"student"`
	MealID    uint      `gorm:"not null;uniqueIndex:idx_meal_records_student_meal" json:"meal_id"`
	Meal      Meal      `json:"meal"`
	EatenAt   time.Time `gorm:"autoCreateTime" json:"eaten_at"`
	Marked    bool      `gorm:"not null;default:true" json:"marked"`
}

// MealPlan is a student's stated intent to eat a meal type today. It
// carries no cost until Confirm converts it into a MealRecord.
type MealPlan struct {
	gorm.Model
	StudentID uint      `gorm:"not null;uniqueIndex:idx_meal_plans_student_type_date" json:"student_id"`
	Student   Student   `json:"student"`
	MealType  string    `gorm:"size:20;not null;uniqueIndex:idx_meal_plans_student_type_date" json:"meal_type"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_meal_plans_student_type_date;index" json:"date"` // local midnight
	Planned   bool      `gorm:"not null;default:true" json:"planned"`
}
