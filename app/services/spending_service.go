package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/app/repositories"
	"github.com/hostelmess/hostelmess/pkg/collection"
	"github.com/hostelmess/hostelmess/pkg/dates"
	"github.com/hostelmess/hostelmess/pkg/metrics"
)

// SpendingService aggregates what each student owes: billed meals plus
// grocery purchases. Sums are computed in memory over the loaded rows,
// so a figure always matches the detail rows shown next to it.
type SpendingService struct {
	db        *gorm.DB
	users     *repositories.UserRepository
	meals     *repositories.MealRepository
	purchases *repositories.PurchaseRepository
}

func NewSpendingService(db *gorm.DB) *SpendingService {
	return &SpendingService{
		db:        db,
		users:     repositories.NewUserRepository(db),
		meals:     repositories.NewMealRepository(db),
		purchases: repositories.NewPurchaseRepository(db),
	}
}

// StudentSpending is one student's row in the admin spending report.
// Monthly figures cover the current calendar month; all-time figures
// have no date filter.
type StudentSpending struct {
	StudentID           uint    `json:"studentId"`
	StudentName         string  `json:"studentName"`
	RollNo              string  `json:"rollNo"`
	MonthlyMealSpent    float64 `json:"monthlyMealSpent"`
	MonthlyGrocerySpent float64 `json:"monthlyGrocerySpent"`
	MonthlyTotalSpent   float64 `json:"monthlyTotalSpent"`
	AllTimeMealSpent    float64 `json:"allTimeMealSpent"`
	AllTimeGrocerySpent float64 `json:"allTimeGrocerySpent"`
	AllTimeTotalSpent   float64 `json:"allTimeTotalSpent"`
}

// UserSpending computes every student's current-month and all-time
// spending.
func (s *SpendingService) UserSpending() ([]StudentSpending, error) {
	defer metrics.ObserveDBQuery("spending.user_spending", time.Now())

	now := time.Now()
	start, end := dates.MonthRange(now.Year(), now.Month())

	students, err := s.users.Students()
	if err != nil {
		return nil, err
	}

	report := make([]StudentSpending, 0, len(students))
	for _, student := range students {
		row, err := s.spendingFor(student, start, end)
		if err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, nil
}

func (s *SpendingService) spendingFor(student models.Student, start, end time.Time) (StudentSpending, error) {
	row := StudentSpending{
		StudentID:   student.ID,
		StudentName: student.User.Name,
		RollNo:      student.RollNo,
	}

	allRecords, err := s.meals.RecordsForStudent(student.ID)
	if err != nil {
		return row, err
	}
	allPurchases, err := s.purchases.ForStudent(student.ID)
	if err != nil {
		return row, err
	}

	mealPrice := func(r models.MealRecord) float64 { return r.Meal.Price }
	purchasePrice := func(p models.Purchase) float64 { return p.TotalPrice }

	inMonth := func(t time.Time) bool { return !t.Before(start) && !t.After(end) }
	monthRecords := collection.Filter(allRecords, func(r models.MealRecord) bool {
		return inMonth(r.Meal.Date)
	})
	monthPurchases := collection.Filter(allPurchases, func(p models.Purchase) bool {
		return inMonth(p.CreatedAt)
	})

	row.MonthlyMealSpent = collection.Sum(monthRecords, mealPrice)
	row.MonthlyGrocerySpent = collection.Sum(monthPurchases, purchasePrice)
	row.MonthlyTotalSpent = row.MonthlyMealSpent + row.MonthlyGrocerySpent
	row.AllTimeMealSpent = collection.Sum(allRecords, mealPrice)
	row.AllTimeGrocerySpent = collection.Sum(allPurchases, purchasePrice)
	row.AllTimeTotalSpent = row.AllTimeMealSpent + row.AllTimeGrocerySpent
	return row, nil
}

// BreakdownInput selects a student and an optional month for the admin
// breakdown report. Month and year default to the current month.
type BreakdownInput struct {
	StudentID uint `json:"studentId" validate:"required,gte=1"`
	Month     int  `json:"month" validate:"nullable,gte=1,lte=12"`
	Year      int  `json:"year" validate:"nullable,gte=2000,lte=2100"`
}

// MealLine is one billed meal inside a day's breakdown.
type MealLine struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Price float64   `json:"price"`
	Time  time.Time `json:"time"`
}

// PurchaseLine is one grocery purchase inside a day's breakdown.
type PurchaseLine struct {
	ID          uint      `json:"id"`
	GroceryName string    `json:"groceryName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalPrice  float64   `json:"totalPrice"`
	Time        time.Time `json:"time"`
}

// DayBreakdown is one calendar day inside a student's monthly detail.
type DayBreakdown struct {
	Date              string         `json:"date"`
	Meals             []MealLine     `json:"meals"`
	Purchases         []PurchaseLine `json:"purchases"`
	TotalMealSpent    float64        `json:"totalMealSpent"`
	TotalGrocerySpent float64        `json:"totalGrocerySpent"`
	TotalSpent        float64        `json:"totalSpent"`
	MealCount         int            `json:"mealCount"`
	PurchaseCount     int            `json:"purchaseCount"`
}

// MonthlyTotals sums a breakdown's days.
type MonthlyTotals struct {
	TotalMealSpent    float64 `json:"totalMealSpent"`
	TotalGrocerySpent float64 `json:"totalGrocerySpent"`
	TotalSpent        float64 `json:"totalSpent"`
	TotalMeals        int     `json:"totalMeals"`
	TotalPurchases    int     `json:"totalPurchases"`
	ActiveDays        int     `json:"activeDays"`
}

// BreakdownStudent is the profile header of a breakdown report.
type BreakdownStudent struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RollNo string `json:"rollNo"`
	Hostel string `json:"hostel"`
	Room   string `json:"room"`
}

// BreakdownReport is one student's month, split into per-day line items.
type BreakdownReport struct {
	Student        BreakdownStudent `json:"student"`
	MonthlyTotals  MonthlyTotals    `json:"monthlyTotals"`
	DailyBreakdown []DayBreakdown   `json:"dailyBreakdown"`
	Month          string           `json:"month"`
}

// DailyBreakdown builds one student's monthly report: per-day meals and
// purchases with day totals, newest day first. Days with no activity
// are omitted.
func (s *SpendingService) DailyBreakdown(studentID uint, year int, month time.Month) (BreakdownReport, error) {
	student, err := s.users.StudentByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BreakdownReport{}, ErrNotFound
	}
	if err != nil {
		return BreakdownReport{}, err
	}

	start, end := dates.MonthRange(year, month)

	records, err := s.meals.RecordsInRange(studentID, start, end)
	if err != nil {
		return BreakdownReport{}, err
	}
	purchases, err := s.purchases.ForStudentInRange(studentID, start, end)
	if err != nil {
		return BreakdownReport{}, err
	}

	mealsByDay := collection.GroupBy(records, func(r models.MealRecord) string {
		return dates.DateString(r.Meal.Date)
	})
	purchasesByDay := collection.GroupBy(purchases, func(p models.Purchase) string {
		return dates.DateString(p.CreatedAt)
	})

	seen := map[string]bool{}
	for key := range mealsByDay {
		seen[key] = true
	}
	for key := range purchasesByDay {
		seen[key] = true
	}

	days := make([]DayBreakdown, 0, len(seen))
	for key := range seen {
		d := DayBreakdown{Date: key, Meals: []MealLine{}, Purchases: []PurchaseLine{}}
		for _, r := range mealsByDay[key] {
			d.Meals = append(d.Meals, MealLine{
				ID:    r.ID,
				Name:  r.Meal.Name,
				Type:  r.Meal.Type,
				Price: r.Meal.Price,
				Time:  r.EatenAt,
			})
			d.TotalMealSpent += r.Meal.Price
			d.MealCount++
		}
		for _, p := range purchasesByDay[key] {
			d.Purchases = append(d.Purchases, PurchaseLine{
				ID:          p.ID,
				GroceryName: p.Grocery.Name,
				Quantity:    p.Quantity,
				UnitPrice:   p.Grocery.Price,
				TotalPrice:  p.TotalPrice,
				Time:        p.CreatedAt,
			})
			d.TotalGrocerySpent += p.TotalPrice
			d.PurchaseCount++
		}
		d.TotalSpent = d.TotalMealSpent + d.TotalGrocerySpent
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	report := BreakdownReport{
		Student: BreakdownStudent{
			ID:     student.ID,
			Name:   student.User.Name,
			Email:  student.User.Email,
			RollNo: student.RollNo,
			Hostel: student.Hostel,
			Room:   student.Room,
		},
		DailyBreakdown: days,
		Month:          start.Format("January 2006"),
	}
	for _, d := range days {
		report.MonthlyTotals.TotalMealSpent += d.TotalMealSpent
		report.MonthlyTotals.TotalGrocerySpent += d.TotalGrocerySpent
		report.MonthlyTotals.TotalSpent += d.TotalSpent
		report.MonthlyTotals.TotalMeals += d.MealCount
		report.MonthlyTotals.TotalPurchases += d.PurchaseCount
	}
	report.MonthlyTotals.ActiveDays = len(days)
	return report, nil
}

// TodayMealCounts holds today's billed-record counts per meal type.
type TodayMealCounts struct {
	Breakfast int64 `json:"breakfast"`
	Lunch     int64 `json:"lunch"`
	Dinner    int64 `json:"dinner"`
}

// Stats summarises the mess for the admin dashboard.
type Stats struct {
	TotalStudents  int64           `json:"totalStudents"`
	TotalMeals     int64           `json:"totalMeals"`
	TotalGroceries int64           `json:"totalGroceries"`
	TotalPurchases int64           `json:"totalPurchases"`
	TodayMeals     TodayMealCounts `json:"todayMeals"`
}

// Overview computes the dashboard stats: lifetime totals plus how many
// of each meal type was billed today.
func (s *SpendingService) Overview() (Stats, error) {
	var st Stats

	if err := s.db.Model(&models.Student{}).Count(&st.TotalStudents).Error; err != nil {
		return st, err
	}
	if err := s.db.Model(&models.MealRecord{}).Count(&st.TotalMeals).Error; err != nil {
		return st, err
	}
	err := s.db.Model(&models.Grocery{}).
		Where("available = ?", true).
		Count(&st.TotalGroceries).Error
	if err != nil {
		return st, err
	}
	if err := s.db.Model(&models.Purchase{}).Count(&st.TotalPurchases).Error; err != nil {
		return st, err
	}

	today, tomorrow := dates.Today(), dates.Tomorrow()
	countType := func(mealType string, dst *int64) error {
		return s.db.Model(&models.MealRecord{}).
			Joins("JOIN meals ON meals.id = meal_records.meal_id").
			Where("meals.type = ? AND meals.date >= ? AND meals.date < ?", mealType, today, tomorrow).
			Count(dst).Error
	}
	if err := countType(models.MealBreakfast, &st.TodayMeals.Breakfast); err != nil {
		return st, err
	}
	if err := countType(models.MealLunch, &st.TodayMeals.Lunch); err != nil {
		return st, err
	}
	if err := countType(models.MealDinner, &st.TodayMeals.Dinner); err != nil {
		return st, err
	}
	return st, nil
}
