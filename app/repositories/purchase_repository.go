package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
)

// PurchaseRepository handles database operations for grocery purchases.
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts a purchase row.
func (r *PurchaseRepository) Create(tx *gorm.DB, purchase *models.Purchase) error {
	return tx.Create(purchase).Error
}

// ForStudent returns a student's purchases with groceries preloaded,
// newest first.
func (r *PurchaseRepository) ForStudent(studentID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.
		Preload("Grocery").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// ForStudentInRange returns a student's purchases created in [start, end]
// with groceries preloaded.
func (r *PurchaseRepository) ForStudentInRange(studentID uint, start, end time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.
		Preload("Grocery").
		Where("student_id = ? AND created_at >= ? AND created_at <= ?", studentID, start, end).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// All returns every purchase with student and grocery preloaded, newest
// first.
func (r *PurchaseRepository) All() ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.
		Preload("Grocery").
		Preload("Student.User").
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}
