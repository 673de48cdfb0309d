package models

import "gorm.io/gorm"

// Roles a User account can hold.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// User is a login account. Students and admins both authenticate through
// a User row; the role decides which profile row accompanies it.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Name     string `gorm:"size:255;not null" json:"name"`
	Role     string `gorm:"size:50;not null;default:STUDENT" json:"role"`
}

// Admin is the 1:1 profile row for an ADMIN user.
type Admin struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `json:"-"`
}

// Student is the 1:1 profile row for a STUDENT user.
type Student struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User   `json:"user"`
	RollNo string `gorm:"uniqueIndex;size:50;not null" json:"roll_no"`
	Hostel string `gorm:"size:100" json:"hostel"`
	Room   string `gorm:"size:50" json:"room"`
	Phone  string `gorm:"size:20" json:"phone"`

	MealRecords []MealRecord `json:"-"`
	MealPlans   []MealPlan   `json:"-"`
	Purchases   []Purchase   `json:"-"`
}
