package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/dates"
)

// MealRepository handles database operations for meals, meal plans and
// billed meal records.
type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// PlanForToday returns today's plan row for one student and meal type,
// if any.
func (r *MealRepository) PlanForToday(studentID uint, mealType string) (models.MealPlan, error) {
	var plan models.MealPlan
	err := r.db.
		Where("student_id = ? AND meal_type = ? AND date >= ? AND date < ?",
			studentID, mealType, dates.Today(), dates.Tomorrow()).
		First(&plan).Error
	return plan, err
}

// PlansForToday returns today's plans for one student.
func (r *MealRepository) PlansForToday(studentID uint) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := r.db.
		Where("student_id = ? AND date >= ? AND date < ?",
			studentID, dates.Today(), dates.Tomorrow()).
		Find(&plans).Error
	return plans, err
}

// AllPlansForToday returns every student's plans for today, student and
// user accounts preloaded.
func (r *MealRepository) AllPlansForToday() ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := r.db.
		Preload("Student.User").
		Where("date >= ? AND date < ?", dates.Today(), dates.Tomorrow()).
		Find(&plans).Error
	return plans, err
}

// CreatePlan inserts a new plan row.
func (r *MealRepository) CreatePlan(plan *models.MealPlan) error {
	return r.db.Create(plan).Error
}

// SavePlan persists changes to an existing plan row.
func (r *MealRepository) SavePlan(plan *models.MealPlan) error {
	return r.db.Save(plan).Error
}

// DeletePlanForToday removes today's plan rows for one student and meal
// type and reports how many were deleted. The delete is physical; a
// soft-deleted row would still hold the (student, type, date) unique
// slot and block re-planning.
func (r *MealRepository) DeletePlanForToday(studentID uint, mealType string) (int64, error) {
	res := r.db.Unscoped().
		Where("student_id = ? AND meal_type = ? AND date >= ? AND date < ?",
			studentID, mealType, dates.Today(), dates.Tomorrow()).
		Delete(&models.MealPlan{})
	return res.RowsAffected, res.Error
}

// DeleteStalePlans removes plan rows from past days. The board only
// ever shows today, so old rows are dead weight.
func (r *MealRepository) DeleteStalePlans() (int64, error) {
	res := r.db.Unscoped().Where("date < ?", dates.Today()).Delete(&models.MealPlan{})
	return res.RowsAffected, res.Error
}

// DeleteTodayPlans removes all of today's plan rows and reports how many
// were deleted.
func (r *MealRepository) DeleteTodayPlans() (int64, error) {
	res := r.db.Unscoped().
		Where("date >= ? AND date < ?", dates.Today(), dates.Tomorrow()).
		Delete(&models.MealPlan{})
	return res.RowsAffected, res.Error
}

// MealForDay returns the meal row for a type and day, if any.
func (r *MealRepository) MealForDay(tx *gorm.DB, mealType string, day time.Time) (models.Meal, error) {
	var meal models.Meal
	err := tx.
		Where("type = ? AND date >= ? AND date < ?",
			mealType, day, day.AddDate(0, 0, 1)).
		First(&meal).Error
	return meal, err
}

// FindOrCreateMeal returns the shared meal row for a type and day,
// creating it at the catalog price when the day has none yet.
func (r *MealRepository) FindOrCreateMeal(tx *gorm.DB, mealType string, day time.Time) (models.Meal, error) {
	var meal models.Meal
	err := tx.
		Where("type = ? AND date >= ? AND date < ?",
			mealType, day, day.AddDate(0, 0, 1)).
		First(&meal).Error
	if err == nil {
		return meal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return meal, err
	}

	meal = models.Meal{
		Name:      models.MealDisplayName(mealType),
		Type:      mealType,
		Date:      day,
		Price:     models.MealPrice(mealType),
		Available: true,
	}
	err = tx.Create(&meal).Error
	return meal, err
}

// RecordForMeal returns a student's billed record for one meal row, if any.
func (r *MealRepository) RecordForMeal(tx *gorm.DB, studentID, mealID uint) (models.MealRecord, error) {
	var record models.MealRecord
	err := tx.
		Where("student_id = ? AND meal_id = ?", studentID, mealID).
		First(&record).Error
	return record, err
}

// CreateRecord inserts a billed meal record.
func (r *MealRepository) CreateRecord(tx *gorm.DB, record *models.MealRecord) error {
	return tx.Create(record).Error
}

// DeleteRecord removes a billed meal record. The delete is physical so
// the (student, meal) slot can be billed again later.
func (r *MealRepository) DeleteRecord(tx *gorm.DB, recordID uint) error {
	return tx.Unscoped().Delete(&models.MealRecord{}, recordID).Error
}

// RecordsInRange returns a student's billed records whose meal falls in
// [start, end], with the meal rows preloaded.
func (r *MealRepository) RecordsInRange(studentID uint, start, end time.Time) ([]models.MealRecord, error) {
	var records []models.MealRecord
	err := r.db.
		Preload("Meal").
		Joins("JOIN meals ON meals.id = meal_records.meal_id").
		Where("meal_records.student_id = ? AND meals.date >= ? AND meals.date <= ?",
			studentID, start, end).
		Find(&records).Error
	return records, err
}

// RecordsForStudent returns all of a student's billed records with meals
// preloaded.
func (r *MealRepository) RecordsForStudent(studentID uint) ([]models.MealRecord, error) {
	var records []models.MealRecord
	err := r.db.
		Preload("Meal").
		Joins("JOIN meals ON meals.id = meal_records.meal_id").
		Where("meal_records.student_id = ?", studentID).
		Order("meals.date DESC").
		Find(&records).Error
	return records, err
}

// TodayRecords returns all billed records for today's meals with student
// and meal preloaded.
func (r *MealRepository) TodayRecords() ([]models.MealRecord, error) {
	var records []models.MealRecord
	err := r.db.
		Preload("Meal").
		Preload("Student.User").
		Joins("JOIN meals ON meals.id = meal_records.meal_id").
		Where("meals.date >= ? AND meals.date < ?", dates.Today(), dates.Tomorrow()).
		Find(&records).Error
	return records, err
}
