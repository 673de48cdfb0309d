package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hostelmess/hostelmess/app/models"
)

// testDB opens a fresh in-memory database with the full schema. The
// DSN is named after the test so pooled connections share one database
// without tests sharing state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Student{},
		&models.Meal{},
		&models.MealPlan{},
		&models.MealRecord{},
		&models.Grocery{},
		&models.Purchase{},
	))
	return db
}

// seedStudent creates a user+student pair and returns the student.
func seedStudent(t *testing.T, db *gorm.DB, email, rollNo string) models.Student {
	t.Helper()

	user := models.User{
		Email:    email,
		Password: "not-a-real-hash",
		Name:     "Test Student",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)

	student := models.Student{UserID: user.ID, RollNo: rollNo, Hostel: "A Block", Room: "101"}
	require.NoError(t, db.Create(&student).Error)
	student.User = user
	return student
}

// seedGrocery creates one catalog item.
func seedGrocery(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Grocery {
	t.Helper()

	grocery := models.Grocery{Name: name, Price: price, Stock: stock, Available: true}
	require.NoError(t, db.Create(&grocery).Error)
	return grocery
}
