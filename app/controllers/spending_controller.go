package controllers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/services"
	"github.com/hostelmess/hostelmess/pkg/bind"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/response"
)

// SpendingController exposes the spending reports and the dashboard
// stats.
type SpendingController struct {
	service  *services.SpendingService
	students *services.StudentService
}

func NewSpendingController(db *gorm.DB) *SpendingController {
	return &SpendingController{
		service:  services.NewSpendingService(db),
		students: services.NewStudentService(db),
	}
}

// Report returns every student's current-month and all-time spending.
func (c *SpendingController) Report(w http.ResponseWriter, r *http.Request) {
	report, err := c.service.UserSpending()
	if err != nil {
		response.Internal(w, "Failed to compute spending report")
		return
	}
	response.OK(w, map[string]interface{}{"report": report})
}

// StudentBreakdown returns one student's per-day detail for a month.
// Admin view, student chosen in the request body.
func (c *SpendingController) StudentBreakdown(w http.ResponseWriter, r *http.Request) {
	var in services.BreakdownInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	year, month := in.Year, time.Month(in.Month)
	if in.Year == 0 {
		year = now.Year()
	}
	if in.Month == 0 {
		month = now.Month()
	}

	report, err := c.service.DailyBreakdown(in.StudentID, year, month)
	if err != nil {
		serviceError(w, err, "Failed to compute breakdown")
		return
	}
	response.OK(w, report)
}

// MyBreakdown returns the authenticated student's own per-day detail
// for the requested month (defaults to the current one).
func (c *SpendingController) MyBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	student, err := c.students.ByUserID(userID)
	if err != nil {
		serviceError(w, err, "Failed to load student profile")
		return
	}

	year, month := monthQuery(r)
	report, err := c.service.DailyBreakdown(student.ID, year, month)
	if err != nil {
		serviceError(w, err, "Failed to compute breakdown")
		return
	}
	response.OK(w, report)
}

// Stats returns the admin dashboard overview.
func (c *SpendingController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Overview()
	if err != nil {
		response.Internal(w, "Failed to compute stats")
		return
	}
	response.OK(w, stats)
}
