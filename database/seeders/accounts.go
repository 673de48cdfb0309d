package seeders

import (
	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/auth"
)

func init() {
	Register("accounts", SeedAccounts)
}

// SeedAccounts creates a demo admin and two demo students, all with the
// password "password". Skips itself if the admin already exists.
func SeedAccounts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email:    "admin@example.com",
			Password: hash,
			Name:     "Admin User",
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Admin{UserID: admin.ID}).Error; err != nil {
			return err
		}

		students := []struct {
			email, name, rollNo, hostel, room, phone string
		}{
			{"student@example.com", "John Doe", "STU001", "A Block", "101", "9876543210"},
			{"jane@example.com", "Jane Smith", "STU002", "B Block", "202", "9876543211"},
		}
		for _, s := range students {
			user := models.User{
				Email:    s.email,
				Password: hash,
				Name:     s.name,
				Role:     models.RoleStudent,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			student := models.Student{
				UserID: user.ID,
				RollNo: s.rollNo,
				Hostel: s.hostel,
				Room:   s.room,
				Phone:  s.phone,
			}
			if err := tx.Create(&student).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
