package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/metrics"
)

// GroceryRepository handles database operations for the grocery catalog.
type GroceryRepository struct {
	db *gorm.DB
}

func NewGroceryRepository(db *gorm.DB) *GroceryRepository {
	return &GroceryRepository{db: db}
}

// All returns the whole catalog, newest first.
func (r *GroceryRepository) All() ([]models.Grocery, error) {
	defer metrics.ObserveDBQuery("grocery.list", time.Now())
	var groceries []models.Grocery
	err := r.db.Order("name ASC").Find(&groceries).Error
	return groceries, err
}

// InStock returns catalog items students can buy right now.
func (r *GroceryRepository) InStock() ([]models.Grocery, error) {
	var groceries []models.Grocery
	err := r.db.
		Where("available = ? AND stock > 0", true).
		Order("name ASC").
		Find(&groceries).Error
	return groceries, err
}

// FindByID looks up one catalog item.
func (r *GroceryRepository) FindByID(id uint) (models.Grocery, error) {
	var grocery models.Grocery
	err := r.db.First(&grocery, id).Error
	return grocery, err
}

// Create inserts a new catalog item.
func (r *GroceryRepository) Create(grocery *models.Grocery) error {
	return r.db.Create(grocery).Error
}

// Save persists changes to a catalog item.
func (r *GroceryRepository) Save(grocery *models.Grocery) error {
	return r.db.Save(grocery).Error
}

// Delete removes a catalog item. Past purchases keep their snapshot of
// the price so history is unaffected.
func (r *GroceryRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Grocery{}, id)
	return res.RowsAffected, res.Error
}
