package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmess/hostelmess/app/models"
)

func TestCheckoutDecrementsStock(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	noodles := seedGrocery(t, db, "Instant Noodles", 15, 10)
	svc := NewPurchaseService(db)

	purchases, err := svc.Checkout(student.ID, CheckoutInput{
		Items: []CheckoutItem{{GroceryID: noodles.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, 45.0, purchases[0].TotalPrice)
	assert.Equal(t, models.PurchasePending, purchases[0].Status)

	var after models.Grocery
	require.NoError(t, db.First(&after, noodles.ID).Error)
	assert.Equal(t, 7, after.Stock)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	chips := seedGrocery(t, db, "Chips", 25, 5)
	soap := seedGrocery(t, db, "Soap", 45, 1)
	svc := NewPurchaseService(db)

	_, err := svc.Checkout(student.ID, CheckoutInput{
		Items: []CheckoutItem{
			{GroceryID: chips.ID, Quantity: 2},
			{GroceryID: soap.ID, Quantity: 3}, // over stock
		},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// First line rolled back with the second.
	var after models.Grocery
	require.NoError(t, db.First(&after, chips.ID).Error)
	assert.Equal(t, 5, after.Stock)

	var count int64
	db.Model(&models.Purchase{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutUnavailableItem(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	grocery := seedGrocery(t, db, "Coffee", 35, 10)
	require.NoError(t, db.Model(&models.Grocery{}).Where("id = ?", grocery.ID).
		Update("available", false).Error)
	svc := NewPurchaseService(db)

	_, err := svc.Checkout(student.ID, CheckoutInput{
		Items: []CheckoutItem{{GroceryID: grocery.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCheckoutUsesCatalogPrice(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	chocolate := seedGrocery(t, db, "Chocolate", 30, 20)
	svc := NewPurchaseService(db)

	purchases, err := svc.Checkout(student.ID, CheckoutInput{
		Items: []CheckoutItem{{GroceryID: chocolate.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, purchases[0].TotalPrice)
}

func TestAdminAddLeavesStockAlone(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	teabags := seedGrocery(t, db, "Tea Bags", 45, 20)
	svc := NewPurchaseService(db)

	purchase, err := svc.AdminAdd(AdminPurchaseInput{
		StudentID: student.ID,
		GroceryID: teabags.ID,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseConfirmed, purchase.Status)
	assert.Equal(t, 225.0, purchase.TotalPrice)

	var after models.Grocery
	require.NoError(t, db.First(&after, teabags.ID).Error)
	assert.Equal(t, 20, after.Stock)
}

func TestAdminAddUnknownStudent(t *testing.T) {
	db := testDB(t)
	grocery := seedGrocery(t, db, "Biscuits", 20, 10)
	svc := NewPurchaseService(db)

	_, err := svc.AdminAdd(AdminPurchaseInput{StudentID: 999, GroceryID: grocery.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}
