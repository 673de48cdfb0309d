package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/auth"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/router"
)

// testApp stands up the full middleware + routing stack over an
// in-memory database.
func testApp(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Admin{}, &models.Student{},
		&models.Meal{}, &models.MealPlan{}, &models.MealRecord{},
		&models.Grocery{}, &models.Purchase{},
	))

	r := router.New()
	r.Use(middleware.Recovery)
	RegisterAPI(r, db)
	return r.Handler(), db
}

func seedAccount(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	user := models.User{Email: email, Password: hash, Name: "Someone", Role: role}
	require.NoError(t, db.Create(&user).Error)

	if role == models.RoleStudent {
		require.NoError(t, db.Create(&models.Student{
			UserID: user.ID,
			RollNo: "R" + email,
		}).Error)
	}
	return user
}

func bearer(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(h http.Handler, method, path, authz string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h, _ := testApp(t)
	w := doJSON(h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	h, _ := testApp(t)

	for _, path := range []string{
		"/api/auth/me",
		"/api/student/profile",
		"/api/admin/students",
		"/api/groceries",
	} {
		w := doJSON(h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAdminRoutesRejectStudents(t *testing.T) {
	h, db := testApp(t)
	student := seedAccount(t, db, "s@example.com", models.RoleStudent)
	authz := bearer(t, student)

	w := doJSON(h, http.MethodGet, "/api/admin/students", authz, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(h, http.MethodPost, "/api/admin/reset-meal-plans", authz, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, db := testApp(t)
	seedAccount(t, db, "admin@example.com", models.RoleAdmin)

	w := doJSON(h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "admin@example.com", body.User.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	h, db := testApp(t)
	seedAccount(t, db, "admin@example.com", models.RoleAdmin)

	w := doJSON(h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentMealPlanFlow(t *testing.T) {
	h, db := testApp(t)
	student := seedAccount(t, db, "s@example.com", models.RoleStudent)
	admin := seedAccount(t, db, "a@example.com", models.RoleAdmin)

	// Student opts into lunch.
	w := doJSON(h, http.MethodPost, "/api/student/meal-plan", bearer(t, student),
		map[string]interface{}{"mealType": "LUNCH", "planned": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Bad meal type is a validation error.
	w = doJSON(h, http.MethodPost, "/api/student/meal-plan", bearer(t, student),
		map[string]interface{}{"mealType": "BRUNCH", "planned": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A missing planned flag is one too.
	w = doJSON(h, http.MethodPost, "/api/student/meal-plan", bearer(t, student),
		map[string]interface{}{"mealType": "LUNCH"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin sees the student in the lunch bucket.
	w = doJSON(h, http.MethodGet, "/api/admin/meal-plan", bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board struct {
		Breakfast []map[string]interface{} `json:"breakfast"`
		Lunch     []map[string]interface{} `json:"lunch"`
		Dinner    []map[string]interface{} `json:"dinner"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(t, board.Lunch, 1)
	assert.Empty(t, board.Breakfast)

	// Admin confirms the day.
	w = doJSON(h, http.MethodPost, "/api/admin/confirm-meals", bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var records int64
	db.Model(&models.MealRecord{}).Count(&records)
	assert.EqualValues(t, 1, records)

	// The billed lunch shows up in the student's history.
	w = doJSON(h, http.MethodGet, "/api/student/meals", bearer(t, student), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LUNCH")

	// And on the attendance board.
	w = doJSON(h, http.MethodGet, "/api/admin/today-meals", bearer(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"marked\":true")
}

func TestAdminMarkAndPlanEndpoints(t *testing.T) {
	h, db := testApp(t)
	admin := seedAccount(t, db, "a@example.com", models.RoleAdmin)
	studentUser := seedAccount(t, db, "s@example.com", models.RoleStudent)
	authz := bearer(t, admin)

	var student models.Student
	require.NoError(t, db.Where("user_id = ?", studentUser.ID).First(&student).Error)

	// Admin plans dinner for the student, then removes it.
	w := doJSON(h, http.MethodPost, "/api/admin/meal-plan", authz,
		map[string]interface{}{"studentId": student.ID, "mealType": "DINNER", "planned": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(h, http.MethodPost, "/api/admin/meal-plan", authz,
		map[string]interface{}{"studentId": student.ID, "mealType": "DINNER", "planned": false})
	require.Equal(t, http.StatusOK, w.Code)

	var plans int64
	db.Model(&models.MealPlan{}).Count(&plans)
	assert.Zero(t, plans)

	// Walk-in mark, double mark, then unmark.
	w = doJSON(h, http.MethodPost, "/api/admin/mark-meal", authz,
		map[string]interface{}{"studentId": student.ID, "mealType": "LUNCH", "marked": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(h, http.MethodPost, "/api/admin/mark-meal", authz,
		map[string]interface{}{"studentId": student.ID, "mealType": "LUNCH", "marked": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(h, http.MethodPost, "/api/admin/mark-meal", authz,
		map[string]interface{}{"studentId": student.ID, "mealType": "LUNCH", "marked": false})
	require.Equal(t, http.StatusOK, w.Code)

	var records int64
	db.Model(&models.MealRecord{}).Count(&records)
	assert.Zero(t, records)
}

func TestCheckoutEndpoint(t *testing.T) {
	h, db := testApp(t)
	student := seedAccount(t, db, "s@example.com", models.RoleStudent)
	grocery := models.Grocery{Name: "Chips", Price: 25, Stock: 10, Available: true}
	require.NoError(t, db.Create(&grocery).Error)

	w := doJSON(h, http.MethodPost, "/api/purchases", bearer(t, student),
		map[string]interface{}{
			"items": []map[string]interface{}{
				{"groceryId": grocery.ID, "quantity": 2},
			},
		})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Over-stock carts are rejected outright.
	w = doJSON(h, http.MethodPost, "/api/purchases", bearer(t, student),
		map[string]interface{}{
			"items": []map[string]interface{}{
				{"groceryId": grocery.ID, "quantity": 100},
			},
		})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStudentManagement(t *testing.T) {
	h, db := testApp(t)
	admin := seedAccount(t, db, "a@example.com", models.RoleAdmin)
	authz := bearer(t, admin)

	w := doJSON(h, http.MethodPost, "/api/admin/students", authz, map[string]string{
		"name":     "John Doe",
		"email":    "john@example.com",
		"password": "secret123",
		"rollNo":   "STU010",
		"hostel":   "A Block",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Missing fields fail validation.
	w = doJSON(h, http.MethodPost, "/api/admin/students", authz, map[string]string{
		"name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var student models.Student
	require.NoError(t, db.Where("roll_no = ?", "STU010").First(&student).Error)

	w = doJSON(h, http.MethodDelete, fmt.Sprintf("/api/admin/students/%d", student.ID), authz, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpendingEndpoints(t *testing.T) {
	h, db := testApp(t)
	admin := seedAccount(t, db, "a@example.com", models.RoleAdmin)
	student := seedAccount(t, db, "s@example.com", models.RoleStudent)

	w := doJSON(h, http.MethodGet, "/api/admin/user-spending", bearer(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "allTimeTotalSpent")

	w = doJSON(h, http.MethodGet, "/api/student/daily-breakdown", bearer(t, student), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "monthlyTotals")

	var profile models.Student
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&profile).Error)

	w = doJSON(h, http.MethodPost, "/api/admin/student-daily-breakdown", bearer(t, admin),
		map[string]interface{}{"studentId": profile.ID})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// An unknown student is a 404, a missing id a 400.
	w = doJSON(h, http.MethodPost, "/api/admin/student-daily-breakdown", bearer(t, admin),
		map[string]interface{}{"studentId": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(h, http.MethodPost, "/api/admin/student-daily-breakdown", bearer(t, admin),
		map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(h, http.MethodGet, "/api/admin/stats", bearer(t, admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "todayMeals")
}
