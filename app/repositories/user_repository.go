package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/metrics"
)

// UserRepository handles database operations for User, Admin and Student.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	defer metrics.ObserveDBQuery("user.find_by_email", time.Now())
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(tx *gorm.DB, user *models.User) error {
	return tx.Create(user).Error
}

// StudentByUserID returns the student profile attached to a user account.
func (r *UserRepository) StudentByUserID(userID uint) (models.Student, error) {
	var student models.Student
	err := r.db.Where("user_id = ?", userID).First(&student).Error
	return student, err
}

// StudentByRollNo looks up a student by roll number.
func (r *UserRepository) StudentByRollNo(rollNo string) (models.Student, error) {
	var student models.Student
	err := r.db.Where("roll_no = ?", rollNo).First(&student).Error
	return student, err
}

// Students returns all student profiles with their user accounts,
// newest first.
func (r *UserRepository) Students() ([]models.Student, error) {
	defer metrics.ObserveDBQuery("student.list", time.Now())
	var students []models.Student
	err := r.db.Preload("User").Order("roll_no ASC").Find(&students).Error
	return students, err
}

// StudentByID returns one student with the user account preloaded.
func (r *UserRepository) StudentByID(id uint) (models.Student, error) {
	var student models.Student
	err := r.db.Preload("User").First(&student, id).Error
	return student, err
}
