package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/app/repositories"
	"github.com/hostelmess/hostelmess/pkg/collection"
	"github.com/hostelmess/hostelmess/pkg/dates"
	"github.com/hostelmess/hostelmess/pkg/logger"
	"github.com/hostelmess/hostelmess/pkg/metrics"
)

// MealPlanService runs the daily meal cycle: students opt in and out of
// today's meals, the admin marks walk-ins, confirms the day (converting
// plans into billed records) and resets the board for tomorrow.
type MealPlanService struct {
	db    *gorm.DB
	meals *repositories.MealRepository
	users *repositories.UserRepository
}

func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{
		db:    db,
		meals: repositories.NewMealRepository(db),
		users: repositories.NewUserRepository(db),
	}
}

// PlanInput toggles the authenticated student's plan for one of today's
// meal types.
type PlanInput struct {
	MealType string `json:"mealType" validate:"required,in=BREAKFAST,LUNCH,DINNER"`
	Planned  *bool  `json:"planned" validate:"required"`
}

// AdminPlanInput toggles any student's plan for one of today's meal
// types.
type AdminPlanInput struct {
	StudentID uint   `json:"studentId" validate:"required,gte=1"`
	MealType  string `json:"mealType" validate:"required,in=BREAKFAST,LUNCH,DINNER"`
	Planned   *bool  `json:"planned" validate:"required"`
}

// MarkInput marks or unmarks a billed meal for a specific student.
type MarkInput struct {
	StudentID uint   `json:"studentId" validate:"required,gte=1"`
	MealType  string `json:"mealType" validate:"required,in=BREAKFAST,LUNCH,DINNER"`
	Marked    *bool  `json:"marked" validate:"required"`
}

// BoardEntry flags one student for one meal type on an admin board.
type BoardEntry struct {
	StudentID uint `json:"studentId"`
	Marked    bool `json:"marked"`
}

// Board groups entries by meal type.
type Board struct {
	Breakfast []BoardEntry `json:"breakfast"`
	Lunch     []BoardEntry `json:"lunch"`
	Dinner    []BoardEntry `json:"dinner"`
}

// Plan opts a student into a meal type for today. Re-planning an
// existing slot just flips Planned back on, so the call is idempotent.
func (s *MealPlanService) Plan(studentID uint, mealType string) (models.MealPlan, error) {
	if !models.ValidMealType(mealType) {
		return models.MealPlan{}, ErrInvalidMealType
	}

	plan, err := s.meals.PlanForToday(studentID, mealType)
	if err == nil {
		if !plan.Planned {
			plan.Planned = true
			err = s.meals.SavePlan(&plan)
		}
		return plan, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MealPlan{}, err
	}

	plan = models.MealPlan{
		StudentID: studentID,
		MealType:  mealType,
		Date:      dates.Today(),
		Planned:   true,
	}
	return plan, s.meals.CreatePlan(&plan)
}

// Unplan opts a student out of a meal type for today by deleting the
// plan rows. Removing a plan that does not exist is a success.
func (s *MealPlanService) Unplan(studentID uint, mealType string) error {
	if !models.ValidMealType(mealType) {
		return ErrInvalidMealType
	}
	_, err := s.meals.DeletePlanForToday(studentID, mealType)
	return err
}

// SetPlan routes an admin plan toggle to Plan or Unplan.
func (s *MealPlanService) SetPlan(studentID uint, mealType string, planned bool) error {
	if planned {
		_, err := s.Plan(studentID, mealType)
		return err
	}
	return s.Unplan(studentID, mealType)
}

// TodayPlans returns a student's own plans for today.
func (s *MealPlanService) TodayPlans(studentID uint) ([]models.MealPlan, error) {
	return s.meals.PlansForToday(studentID)
}

// TodayBoard returns today's active plans grouped by meal type for the
// admin planning board.
func (s *MealPlanService) TodayBoard() (Board, error) {
	plans, err := s.meals.AllPlansForToday()
	if err != nil {
		return Board{}, err
	}

	planned := collection.Filter(plans, func(p models.MealPlan) bool { return p.Planned })
	grouped := collection.GroupBy(planned, func(p models.MealPlan) string { return p.MealType })

	entries := func(mealType string) []BoardEntry {
		out := make([]BoardEntry, 0, len(grouped[mealType]))
		for _, p := range grouped[mealType] {
			out = append(out, BoardEntry{StudentID: p.StudentID, Marked: true})
		}
		return out
	}
	return Board{
		Breakfast: entries(models.MealBreakfast),
		Lunch:     entries(models.MealLunch),
		Dinner:    entries(models.MealDinner),
	}, nil
}

// TodayAttendance returns, for every student and meal type, whether a
// billed record exists today. Backs the admin attendance view.
func (s *MealPlanService) TodayAttendance() (Board, error) {
	students, err := s.users.Students()
	if err != nil {
		return Board{}, err
	}
	records, err := s.meals.TodayRecords()
	if err != nil {
		return Board{}, err
	}

	// billed[mealType] is the set of student ids with a record today.
	billed := make(map[string]map[uint]bool, len(models.MealTypes))
	for _, t := range models.MealTypes {
		billed[t] = make(map[uint]bool)
	}
	for _, rec := range records {
		if set, ok := billed[rec.Meal.Type]; ok {
			set[rec.StudentID] = true
		}
	}

	entries := func(mealType string) []BoardEntry {
		out := make([]BoardEntry, 0, len(students))
		for _, st := range students {
			out = append(out, BoardEntry{StudentID: st.ID, Marked: billed[mealType][st.ID]})
		}
		return out
	}
	return Board{
		Breakfast: entries(models.MealBreakfast),
		Lunch:     entries(models.MealLunch),
		Dinner:    entries(models.MealDinner),
	}, nil
}

// Mark bills a student for one of today's meals immediately, bypassing
// the plan cycle. With marked=false it reverses a prior billing instead.
// Billing twice returns ErrAlreadyMarked; reversing a meal that was
// never billed returns ErrNotMarked.
func (s *MealPlanService) Mark(studentID uint, mealType string, marked bool) (models.MealRecord, error) {
	if !models.ValidMealType(mealType) {
		return models.MealRecord{}, ErrInvalidMealType
	}
	if !marked {
		return models.MealRecord{}, s.unmark(studentID, mealType)
	}

	var record models.MealRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meal, err := s.meals.FindOrCreateMeal(tx, mealType, dates.Today())
		if err != nil {
			return err
		}

		if _, err := s.meals.RecordForMeal(tx, studentID, meal.ID); err == nil {
			return ErrAlreadyMarked
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record = models.MealRecord{
			StudentID: studentID,
			MealID:    meal.ID,
			Marked:    true,
		}
		if err := s.meals.CreateRecord(tx, &record); err != nil {
			return err
		}
		record.Meal = meal
		return nil
	})
	return record, err
}

func (s *MealPlanService) unmark(studentID uint, mealType string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		meal, err := s.meals.MealForDay(tx, mealType, dates.Today())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMarked
		}
		if err != nil {
			return err
		}

		record, err := s.meals.RecordForMeal(tx, studentID, meal.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMarked
		}
		if err != nil {
			return err
		}
		return s.meals.DeleteRecord(tx, record.ID)
	})
}

// ConfirmResult summarises one confirm run.
type ConfirmResult struct {
	Confirmed int `json:"confirmed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Confirm converts every active plan for today into a billed meal
// record. Plans whose student is already billed for that meal are
// skipped; a failure on one plan is logged and does not stop the rest.
func (s *MealPlanService) Confirm() (ConfirmResult, error) {
	plans, err := s.meals.AllPlansForToday()
	if err != nil {
		return ConfirmResult{}, err
	}

	var res ConfirmResult
	for _, plan := range plans {
		if !plan.Planned {
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			meal, err := s.meals.FindOrCreateMeal(tx, plan.MealType, dates.Today())
			if err != nil {
				return err
			}

			if _, err := s.meals.RecordForMeal(tx, plan.StudentID, meal.ID); err == nil {
				return ErrAlreadyMarked
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			return s.meals.CreateRecord(tx, &models.MealRecord{
				StudentID: plan.StudentID,
				MealID:    meal.ID,
				Marked:    true,
			})
		})

		switch {
		case err == nil:
			res.Confirmed++
			metrics.MealPlansConfirmed.Inc()
		case errors.Is(err, ErrAlreadyMarked):
			res.Skipped++
		default:
			res.Failed++
			logger.Error("confirm meal plan failed",
				"plan_id", plan.ID,
				"student_id", plan.StudentID,
				"meal_type", plan.MealType,
				"error", err)
		}
	}
	return res, nil
}

// Reset clears today's planning board. Billed meal records are never
// touched; only the intent rows go.
func (s *MealPlanService) Reset() (int64, error) {
	return s.meals.DeleteTodayPlans()
}

// PurgeStale drops plan rows left over from previous days.
func (s *MealPlanService) PurgeStale() (int64, error) {
	return s.meals.DeleteStalePlans()
}

// MealHistory returns a student's billed records, most recent meal day
// first.
func (s *MealPlanService) MealHistory(studentID uint) ([]models.MealRecord, error) {
	return s.meals.RecordsForStudent(studentID)
}
