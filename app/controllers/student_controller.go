package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/pkg/bind"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// StudentController exposes admin student management plus the student's
// own profile endpoint.
type StudentController struct {
	service *services.StudentService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{service: services.NewStudentService(db)}
}

// List returns all students for the admin panel.
func (c *StudentController) List(w http.ResponseWriter, r *http.Request) {
	students, err := c.service.List()
	if err != nil {
		response.Internal(w, "Failed to load students")
		return
	}
	response.OK(w, map[string]interface{}{"students": students})
}

// Create registers a new student account.
func (c *StudentController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.StudentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	student, err := c.service.Create(in)
	if err != nil {
		serviceError(w, err, "Failed to create student")
		return
	}
	response.Created(w, map[string]interface{}{"student": student})
}

// Delete removes a student and their history.
func (c *StudentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	if err := c.service.Delete(id); err != nil {
		serviceError(w, err, "Failed to delete student")
		return
	}
	response.Success(w, nil)
}

// Profile returns the authenticated student's own profile.
func (c *StudentController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	student, err := c.service.ByUserID(userID)
	if err != nil {
		serviceError(w, err, "Failed to load profile")
		return
	}
	response.OK(w, map[string]interface{}{"student": student})
}
