package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/app/repositories"
	"github.com/hostelmess/hostelmess/pkg/cache"
)

// PurchaseService charges groceries to student accounts. Student
// checkouts reserve stock; admin-recorded purchases are already handed
// over and never touch stock.
type PurchaseService struct {
	db        *gorm.DB
	purchases *repositories.PurchaseRepository
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db, purchases: repositories.NewPurchaseRepository(db)}
}

// CheckoutItem is one line of a student checkout.
type CheckoutItem struct {
	GroceryID uint `json:"groceryId" validate:"required,gte=1"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// CheckoutInput is a student's cart.
type CheckoutInput struct {
	Items []CheckoutItem `json:"items" validate:"required"`
}

// AdminPurchaseInput records a handover done at the counter.
type AdminPurchaseInput struct {
	StudentID uint `json:"studentId" validate:"required,gte=1"`
	GroceryID uint `json:"groceryId" validate:"required,gte=1"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

// Checkout charges a student's cart in one transaction: every line is
// stock-checked and decremented, and the purchase rows are created as
// PENDING. Any failing line rolls back the whole cart. Prices come from
// the catalog at checkout time, never from the client.
func (s *PurchaseService) Checkout(studentID uint, in CheckoutInput) ([]models.Purchase, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var created []models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range in.Items {
			if item.Quantity < 1 {
				return ErrInvalidQuantity
			}

			var grocery models.Grocery
			if err := tx.First(&grocery, item.GroceryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			if !grocery.Available {
				return ErrUnavailable
			}
			if grocery.Stock < item.Quantity {
				return ErrInsufficientStock
			}

			grocery.Stock -= item.Quantity
			if err := tx.Save(&grocery).Error; err != nil {
				return err
			}

			purchase := models.Purchase{
				StudentID:  studentID,
				GroceryID:  grocery.ID,
				Quantity:   item.Quantity,
				TotalPrice: grocery.Price * float64(item.Quantity),
				Status:     models.PurchasePending,
			}
			if err := s.purchases.Create(tx, &purchase); err != nil {
				return err
			}
			purchase.Grocery = grocery
			created = append(created, purchase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.Del("groceries:storefront")
	return created, nil
}

// AdminAdd records a purchase already handed over at the counter. The
// row is created CONFIRMED and stock is left alone, since the goods
// were dispensed outside the reservation flow.
func (s *PurchaseService) AdminAdd(in AdminPurchaseInput) (models.Purchase, error) {
	var student models.Student
	if err := s.db.First(&student, in.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Purchase{}, ErrNotFound
		}
		return models.Purchase{}, err
	}

	var grocery models.Grocery
	if err := s.db.First(&grocery, in.GroceryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Purchase{}, ErrNotFound
		}
		return models.Purchase{}, err
	}

	purchase := models.Purchase{
		StudentID:  in.StudentID,
		GroceryID:  in.GroceryID,
		Quantity:   in.Quantity,
		TotalPrice: grocery.Price * float64(in.Quantity),
		Status:     models.PurchaseConfirmed,
	}
	if err := s.purchases.Create(s.db, &purchase); err != nil {
		return models.Purchase{}, err
	}
	purchase.Grocery = grocery
	return purchase, nil
}

// ForStudent returns a student's purchase history.
func (s *PurchaseService) ForStudent(studentID uint) ([]models.Purchase, error) {
	return s.purchases.ForStudent(studentID)
}

// All returns every purchase for the admin view.
func (s *PurchaseService) All() ([]models.Purchase, error) {
	return s.purchases.All()
}
