package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmess/hostelmess/app/models"
)

func TestPlanIsIdempotent(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	first, err := svc.Plan(student.ID, models.MealLunch)
	require.NoError(t, err)

	second, err := svc.Plan(student.ID, models.MealLunch)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.MealPlan{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPlanRejectsUnknownMealType(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, "BRUNCH")
	assert.ErrorIs(t, err, ErrInvalidMealType)
}

func TestUnplanDeletesRow(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, models.MealDinner)
	require.NoError(t, err)
	require.NoError(t, svc.Unplan(student.ID, models.MealDinner))

	plans, err := svc.TodayPlans(student.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)

	// Re-planning after an unplan starts a fresh row rather than
	// colliding with a leftover one on the unique index.
	_, err = svc.Plan(student.ID, models.MealDinner)
	require.NoError(t, err)
	plans, _ = svc.TodayPlans(student.ID)
	require.Len(t, plans, 1)
	assert.True(t, plans[0].Planned)

	var total int64
	db.Unscoped().Model(&models.MealPlan{}).Count(&total)
	assert.EqualValues(t, 1, total)
}

func TestUnplanWithoutPlanIsSuccess(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	assert.NoError(t, svc.Unplan(student.ID, models.MealLunch))
}

func TestConfirmBillsPlannedMeals(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, models.MealBreakfast)
	require.NoError(t, err)

	res, err := svc.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Confirmed)
	assert.Zero(t, res.Skipped)
	assert.Zero(t, res.Failed)

	// One shared meal row at the breakfast price, one billed record.
	var meal models.Meal
	require.NoError(t, db.First(&meal).Error)
	assert.Equal(t, models.MealBreakfast, meal.Type)
	assert.Equal(t, 30.0, meal.Price)

	var records []models.MealRecord
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, student.ID, records[0].StudentID)
	assert.Equal(t, meal.ID, records[0].MealID)
}

func TestConfirmIsIdempotent(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, models.MealLunch)
	require.NoError(t, err)

	_, err = svc.Confirm()
	require.NoError(t, err)

	res, err := svc.Confirm()
	require.NoError(t, err)
	assert.Zero(t, res.Confirmed)
	assert.Equal(t, 1, res.Skipped)

	var count int64
	db.Model(&models.MealRecord{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestConfirmAfterUnplanBillsNothing(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, models.MealLunch)
	require.NoError(t, err)
	require.NoError(t, svc.Unplan(student.ID, models.MealLunch))

	res, err := svc.Confirm()
	require.NoError(t, err)
	assert.Zero(t, res.Confirmed)

	var count int64
	db.Model(&models.MealRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestResetClearsPlansKeepsRecords(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, models.MealBreakfast)
	require.NoError(t, err)
	_, err = svc.Plan(student.ID, models.MealLunch)
	require.NoError(t, err)
	_, err = svc.Confirm()
	require.NoError(t, err)

	deleted, err := svc.Reset()
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	var planCount, recordCount int64
	db.Model(&models.MealPlan{}).Count(&planCount)
	db.Model(&models.MealRecord{}).Count(&recordCount)
	assert.Zero(t, planCount)
	assert.EqualValues(t, 2, recordCount)
}

func TestReplanAfterReset(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(student.ID, models.MealBreakfast)
	require.NoError(t, err)
	_, err = svc.Reset()
	require.NoError(t, err)

	// The board can be repopulated for the same slots after a reset.
	_, err = svc.Plan(student.ID, models.MealBreakfast)
	require.NoError(t, err)

	plans, err := svc.TodayPlans(student.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.True(t, plans[0].Planned)
}

func TestMarkBillsWalkIn(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	record, err := svc.Mark(student.ID, models.MealDinner, true)
	require.NoError(t, err)
	assert.Equal(t, 45.0, record.Meal.Price)

	_, err = svc.Mark(student.ID, models.MealDinner, true)
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

func TestUnmarkRemovesBilledRecord(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Mark(student.ID, models.MealLunch, true)
	require.NoError(t, err)

	_, err = svc.Mark(student.ID, models.MealLunch, false)
	require.NoError(t, err)

	var count int64
	db.Model(&models.MealRecord{}).Count(&count)
	assert.Zero(t, count)

	// The student can be billed again afterwards; the unmark must not
	// leave a row holding the (student, meal) unique slot.
	_, err = svc.Mark(student.ID, models.MealLunch, true)
	assert.NoError(t, err)

	var total int64
	db.Unscoped().Model(&models.MealRecord{}).Count(&total)
	assert.EqualValues(t, 1, total)
}

func TestUnmarkWithoutRecord(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	_, err := svc.Mark(student.ID, models.MealBreakfast, false)
	assert.ErrorIs(t, err, ErrNotMarked)
}

func TestMarkAndConfirmShareMealRow(t *testing.T) {
	db := testDB(t)
	walkIn := seedStudent(t, db, "a@example.com", "STU001")
	planner := seedStudent(t, db, "b@example.com", "STU002")
	svc := NewMealPlanService(db)

	_, err := svc.Mark(walkIn.ID, models.MealLunch, true)
	require.NoError(t, err)
	_, err = svc.Plan(planner.ID, models.MealLunch)
	require.NoError(t, err)

	_, err = svc.Confirm()
	require.NoError(t, err)

	var mealCount, recordCount int64
	db.Model(&models.Meal{}).Count(&mealCount)
	db.Model(&models.MealRecord{}).Count(&recordCount)
	assert.EqualValues(t, 1, mealCount)
	assert.EqualValues(t, 2, recordCount)
}

func TestTodayBoardGroupsByMealType(t *testing.T) {
	db := testDB(t)
	alice := seedStudent(t, db, "a@example.com", "STU001")
	bob := seedStudent(t, db, "b@example.com", "STU002")
	svc := NewMealPlanService(db)

	_, err := svc.Plan(alice.ID, models.MealBreakfast)
	require.NoError(t, err)
	_, err = svc.Plan(bob.ID, models.MealBreakfast)
	require.NoError(t, err)
	_, err = svc.Plan(alice.ID, models.MealDinner)
	require.NoError(t, err)

	board, err := svc.TodayBoard()
	require.NoError(t, err)
	assert.Len(t, board.Breakfast, 2)
	assert.Empty(t, board.Lunch)
	require.Len(t, board.Dinner, 1)
	assert.Equal(t, alice.ID, board.Dinner[0].StudentID)
	assert.True(t, board.Dinner[0].Marked)
}

func TestTodayAttendanceCoversEveryStudent(t *testing.T) {
	db := testDB(t)
	alice := seedStudent(t, db, "a@example.com", "STU001")
	bob := seedStudent(t, db, "b@example.com", "STU002")
	svc := NewMealPlanService(db)

	_, err := svc.Mark(alice.ID, models.MealLunch, true)
	require.NoError(t, err)

	board, err := svc.TodayAttendance()
	require.NoError(t, err)
	require.Len(t, board.Lunch, 2)
	require.Len(t, board.Breakfast, 2)

	marked := map[uint]bool{}
	for _, e := range board.Lunch {
		marked[e.StudentID] = e.Marked
	}
	assert.True(t, marked[alice.ID])
	assert.False(t, marked[bob.ID])

	for _, e := range board.Breakfast {
		assert.False(t, e.Marked)
	}
}

func TestSetPlanTogglesBothWays(t *testing.T) {
	db := testDB(t)
	student := seedStudent(t, db, "a@example.com", "STU001")
	svc := NewMealPlanService(db)

	require.NoError(t, svc.SetPlan(student.ID, models.MealLunch, true))
	plans, err := svc.TodayPlans(student.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	require.NoError(t, svc.SetPlan(student.ID, models.MealLunch, false))
	plans, err = svc.TodayPlans(student.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
