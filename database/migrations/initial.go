package migrations

import (
	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_accounts", &CreateAccounts{})
	migration.Register("20260101000001_create_meals", &CreateMeals{})
	migration.Register("20260101000002_create_groceries", &CreateGroceries{})
}

// -------- accounts: users, admins, students --------

type CreateAccounts struct{}

func (m *CreateAccounts) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Admin{}, &models.Student{})
}

func (m *CreateAccounts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("students", "admins", "users")
}

// -------- meals: catalog, plans, billed records --------

type CreateMeals struct{}

func (m *CreateMeals) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Meal{}, &models.MealPlan{}, &models.MealRecord{})
}

func (m *CreateMeals) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("meal_records", "meal_plans", "meals")
}

// -------- groceries: catalog and purchases --------

type CreateGroceries struct{}

func (m *CreateGroceries) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Grocery{}, &models.Purchase{})
}

func (m *CreateGroceries) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("purchases", "groceries")
}
