package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/pkg/bind"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// GroceryController exposes the catalog: full CRUD for admins, the
// in-stock storefront for students.
type GroceryController struct {
	service *services.GroceryService
}

func NewGroceryController(db *gorm.DB) *GroceryController {
	return &GroceryController{service: services.NewGroceryService(db)}
}

// Storefront lists items students can buy right now.
func (c *GroceryController) Storefront(w http.ResponseWriter, r *http.Request) {
	groceries, err := c.service.Storefront()
	if err != nil {
		response.Internal(w, "Failed to load groceries")
		return
	}
	response.OK(w, map[string]interface{}{"groceries": groceries})
}

// List returns the whole catalog for the admin panel.
func (c *GroceryController) List(w http.ResponseWriter, r *http.Request) {
	groceries, err := c.service.All()
	if err != nil {
		response.Internal(w, "Failed to load groceries")
		return
	}
	response.OK(w, map[string]interface{}{"groceries": groceries})
}

// Create adds a catalog item.
func (c *GroceryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.GroceryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	grocery, err := c.service.Create(in)
	if err != nil {
		serviceError(w, err, "Failed to create grocery")
		return
	}
	response.Created(w, map[string]interface{}{"grocery": grocery})
}

// Update overwrites a catalog item.
func (c *GroceryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid grocery id")
		return
	}

	var in services.GroceryInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	grocery, err := c.service.Update(id, in)
	if err != nil {
		serviceError(w, err, "Failed to update grocery")
		return
	}
	response.OK(w, map[string]interface{}{"grocery": grocery})
}

// Delete removes a catalog item.
func (c *GroceryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid grocery id")
		return
	}

	if err := c.service.Delete(id); err != nil {
		serviceError(w, err, "Failed to delete grocery")
		return
	}
	response.Success(w, nil)
}
