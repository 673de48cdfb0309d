package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/pkg/bind"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// PurchaseController handles student checkouts and the admin's
// over-the-counter purchase recording.
type PurchaseController struct {
	service  *services.PurchaseService
	students *services.StudentService
}

func NewPurchaseController(db *gorm.DB) *PurchaseController {
	return &PurchaseController{
		service:  services.NewPurchaseService(db),
		students: services.NewStudentService(db),
	}
}

func (c *PurchaseController) student(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return 0, false
	}
	student, err := c.students.ByUserID(userID)
	if err != nil {
		serviceError(w, err, "Failed to load student profile")
		return 0, false
	}
	return student.ID, true
}

// Checkout charges the authenticated student's cart.
func (c *PurchaseController) Checkout(w http.ResponseWriter, r *http.Request) {
	studentID, ok := c.student(w, r)
	if !ok {
		return
	}

	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	purchases, err := c.service.Checkout(studentID, in)
	if err != nil {
		serviceError(w, err, "Checkout failed")
		return
	}
	response.Created(w, map[string]interface{}{"purchases": purchases})
}

// History returns the authenticated student's purchase history.
func (c *PurchaseController) History(w http.ResponseWriter, r *http.Request) {
	studentID, ok := c.student(w, r)
	if !ok {
		return
	}

	purchases, err := c.service.ForStudent(studentID)
	if err != nil {
		response.Internal(w, "Failed to load purchases")
		return
	}
	response.OK(w, map[string]interface{}{"purchases": purchases})
}

// AdminAdd records an over-the-counter handover against a student.
func (c *PurchaseController) AdminAdd(w http.ResponseWriter, r *http.Request) {
	var in services.AdminPurchaseInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	purchase, err := c.service.AdminAdd(in)
	if err != nil {
		serviceError(w, err, "Failed to record purchase")
		return
	}
	response.Created(w, map[string]interface{}{"purchase": purchase})
}

// List returns every purchase for the admin panel.
func (c *PurchaseController) List(w http.ResponseWriter, r *http.Request) {
	purchases, err := c.service.All()
	if err != nil {
		response.Internal(w, "Failed to load purchases")
		return
	}
	response.OK(w, map[string]interface{}{"purchases": purchases})
}
