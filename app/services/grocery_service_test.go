package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmess/hostelmess/app/models"
)

func TestStorefrontHidesOutOfStockAndUnavailable(t *testing.T) {
	db := testDB(t)
	seedGrocery(t, db, "Chips", 25, 40)
	seedGrocery(t, db, "Soap", 45, 0) // out of stock
	unavailable := seedGrocery(t, db, "Coffee", 35, 10)
	require.NoError(t, db.Model(&models.Grocery{}).Where("id = ?", unavailable.ID).
		Update("available", false).Error)

	groceries, err := NewGroceryService(db).Storefront()
	require.NoError(t, err)
	require.Len(t, groceries, 1)
	assert.Equal(t, "Chips", groceries[0].Name)
}

func TestGroceryCRUD(t *testing.T) {
	db := testDB(t)
	svc := NewGroceryService(db)

	created, err := svc.Create(GroceryInput{Name: "Biscuits", Price: 20, Stock: 30, Category: "Snacks"})
	require.NoError(t, err)
	assert.True(t, created.Available)

	off := false
	updated, err := svc.Update(created.ID, GroceryInput{
		Name: "Biscuits", Price: 22, Stock: 25, Category: "Snacks", Available: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, 22.0, updated.Price)
	assert.False(t, updated.Available)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroceryDeleteUnknown(t *testing.T) {
	db := testDB(t)
	assert.ErrorIs(t, NewGroceryService(db).Delete(123), ErrNotFound)
}
