package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/pkg/bind"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// MealController drives the daily meal cycle. Student endpoints resolve
// the student through the session; admin endpoints name students
// explicitly.
type MealController struct {
	plans    *services.MealPlanService
	students *services.StudentService
}

func NewMealController(db *gorm.DB) *MealController {
	return &MealController{
		plans:    services.NewMealPlanService(db),
		students: services.NewStudentService(db),
	}
}

// student resolves the authenticated session to a student profile,
// writing the error response itself on failure.
func (c *MealController) student(w http.ResponseWriter, r *http.Request) (uint, bool) {
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

// MyPlans returns the authenticated student's plans for today.
func (c *MealController) MyPlans(w http.ResponseWriter, r *http.Request) {
	studentID, ok := c.student(w, r)
	if !ok {
		return
	}

	plans, err := c.plans.TodayPlans(studentID)
	if err != nil {
		response.Internal(w, "Failed to load meal plans")
		return
	}
	response.OK(w, map[string]interface{}{"plans": plans})
}

// SetPlan opts the authenticated student in or out of one of today's
// meals.
func (c *MealController) SetPlan(w http.ResponseWriter, r *http.Request) {
	studentID, ok := c.student(w, r)
	if !ok {
		return
	}

	var in services.PlanInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.plans.SetPlan(studentID, in.MealType, *in.Planned); err != nil {
		serviceError(w, err, "Failed to update meal plan")
		return
	}
	response.Success(w, nil)
}

// AdminSetPlan opts a named student in or out of one of today's meals.
func (c *MealController) AdminSetPlan(w http.ResponseWriter, r *http.Request) {
	var in services.AdminPlanInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.plans.SetPlan(in.StudentID, in.MealType, *in.Planned); err != nil {
		serviceError(w, err, "Failed to update meal plan")
		return
	}
	response.Success(w, nil)
}

// History returns the authenticated student's billed meals.
func (c *MealController) History(w http.ResponseWriter, r *http.Request) {
	studentID, ok := c.student(w, r)
	if !ok {
		return
	}

	records, err := c.plans.MealHistory(studentID)
	if err != nil {
		response.Internal(w, "Failed to load meals")
		return
	}
	response.OK(w, map[string]interface{}{"meals": records})
}

// Board returns today's active plans grouped by meal type, for the
// admin planning board.
func (c *MealController) Board(w http.ResponseWriter, r *http.Request) {
	board, err := c.plans.TodayBoard()
	if err != nil {
		response.Internal(w, "Failed to load meal plans")
		return
	}
	response.OK(w, board)
}

// Mark bills a named student for one of today's meals (walk-ins), or
// reverses a billing when marked is false.
func (c *MealController) Mark(w http.ResponseWriter, r *http.Request) {
	var in services.MarkInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	record, err := c.plans.Mark(in.StudentID, in.MealType, *in.Marked)
	if err != nil {
		serviceError(w, err, "Failed to update meal record")
		return
	}
	if !*in.Marked {
		response.Success(w, map[string]interface{}{"message": "Meal unmarked"})
		return
	}
	response.Created(w, map[string]interface{}{"record": record})
}

// Confirm converts today's active plans into billed records.
func (c *MealController) Confirm(w http.ResponseWriter, r *http.Request) {
	result, err := c.plans.Confirm()
	if err != nil {
		response.Internal(w, "Failed to confirm meal plans")
		return
	}
	response.OK(w, map[string]interface{}{"result": result})
}

// Reset clears today's planning board.
func (c *MealController) Reset(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.plans.Reset()
	if err != nil {
		response.Internal(w, "Failed to reset meal plans")
		return
	}
	response.OK(w, map[string]interface{}{"deleted": deleted})
}

// Attendance returns, per meal type, which students have a billed
// record today.
func (c *MealController) Attendance(w http.ResponseWriter, r *http.Request) {
	board, err := c.plans.TodayAttendance()
	if err != nil {
		response.Internal(w, "Failed to load attendance")
		return
	}
	response.OK(w, board)
}
