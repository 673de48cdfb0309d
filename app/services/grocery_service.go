package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/app/repositories"
	"github.com/hostelmess/hostelmess/pkg/cache"
)

// storefrontKey caches the student-facing in-stock list. Any catalog
// write or checkout invalidates it.
const (
	storefrontKey = "groceries:storefront"
	storefrontTTL = 30 * time.Second
)

// GroceryService manages the grocery catalog.
type GroceryService struct {
	groceries *repositories.GroceryRepository
}

func NewGroceryService(db *gorm.DB) *GroceryService {
	return &GroceryService{groceries: repositories.NewGroceryRepository(db)}
}

// GroceryInput is the payload for creating or updating a catalog item.
type GroceryInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"nullable,max=100"`
	Available   *bool   `json:"available" validate:"nullable"`
}

// All returns the whole catalog for the admin view.
func (s *GroceryService) All() ([]models.Grocery, error) {
	return s.groceries.All()
}

// Storefront returns items students can buy right now, served from
// cache when warm.
func (s *GroceryService) Storefront() ([]models.Grocery, error) {
	var cached []models.Grocery
	if cache.Get(storefrontKey, &cached) {
		return cached, nil
	}

	groceries, err := s.groceries.InStock()
	if err != nil {
		return nil, err
	}

	cache.Set(storefrontKey, groceries, storefrontTTL)
	return groceries, nil
}

// Get returns one catalog item.
func (s *GroceryService) Get(id uint) (models.Grocery, error) {
	grocery, err := s.groceries.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Grocery{}, ErrNotFound
	}
	return grocery, err
}

// Create adds a catalog item.
func (s *GroceryService) Create(in GroceryInput) (models.Grocery, error) {
	grocery := models.Grocery{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Available:   true,
	}
	if in.Available != nil {
		grocery.Available = *in.Available
	}

	if err := s.groceries.Create(&grocery); err != nil {
		return models.Grocery{}, err
	}
	cache.Del(storefrontKey)
	return grocery, nil
}

// Update overwrites a catalog item's fields.
func (s *GroceryService) Update(id uint, in GroceryInput) (models.Grocery, error) {
	grocery, err := s.Get(id)
	if err != nil {
		return models.Grocery{}, err
	}

	grocery.Name = in.Name
	grocery.Description = in.Description
	grocery.Price = in.Price
	grocery.Stock = in.Stock
	grocery.Category = in.Category
	if in.Available != nil {
		grocery.Available = *in.Available
	}

	if err := s.groceries.Save(&grocery); err != nil {
		return models.Grocery{}, err
	}
	cache.Del(storefrontKey)
	return grocery, nil
}

// Delete removes a catalog item.
func (s *GroceryService) Delete(id uint) error {
	affected, err := s.groceries.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	cache.Del(storefrontKey)
	return nil
}
