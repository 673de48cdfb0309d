package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/app/repositories"
	"github.com/hostelmess/hostelmess/pkg/auth"
)

// StudentService manages student accounts and their profile rows.
type StudentService struct {
	db    *gorm.DB
	users *repositories.UserRepository
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db, users: repositories.NewUserRepository(db)}
}

// StudentInput is the payload for creating a student account.
type StudentInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	RollNo   string `json:"rollNo" validate:"required,max=50"`
	Hostel   string `json:"hostel" validate:"nullable,max=100"`
	Room     string `json:"room" validate:"nullable,max=50"`
	Phone    string `json:"phone" validate:"nullable,max=20"`
}

// List returns all students with their accounts, newest first.
func (s *StudentService) List() ([]models.Student, error) {
	return s.users.Students()
}

// Get returns one student by profile id.
func (s *StudentService) Get(id uint) (models.Student, error) {
	student, err := s.users.StudentByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, ErrNotFound
	}
	return student, err
}

// ByUserID returns the student profile attached to a login account.
func (s *StudentService) ByUserID(userID uint) (models.Student, error) {
	student, err := s.users.StudentByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, ErrNotFound
	}
	return student, err
}

// Create makes a user account plus student profile in one transaction.
// Duplicate email or roll number is rejected before any write.
func (s *StudentService) Create(in StudentInput) (models.Student, error) {
	if _, err := s.users.FindByEmail(in.Email); err == nil {
		return models.Student{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, err
	}

	if _, err := s.users.StudentByRollNo(in.RollNo); err == nil {
		return models.Student{}, ErrRollNoTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Student{}, err
	}

	var student models.Student
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:    in.Email,
			Password: hash,
			Name:     in.Name,
			Role:     models.RoleStudent,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		student = models.Student{
			UserID: user.ID,
			RollNo: in.RollNo,
			Hostel: in.Hostel,
			Room:   in.Room,
			Phone:  in.Phone,
		}
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		student.User = user
		return nil
	})
	return student, err
}

// Delete removes a student profile, its history and the login account
// in one transaction.
func (s *StudentService) Delete(id uint) error {
	student, err := s.users.StudentByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// Physical deletes throughout: a soft-deleted user or student would
	// keep its email and roll number occupying the unique indexes.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("student_id = ?", id).Delete(&models.MealPlan{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("student_id = ?", id).Delete(&models.MealRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("student_id = ?", id).Delete(&models.Purchase{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&models.Student{}, id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, student.UserID).Error
	})
}
