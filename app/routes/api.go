package routes

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/controllers"
	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/pkg/metrics"
	"github.com/hostelmess/hostelmess/pkg/middleware"
	"github.com/hostelmess/hostelmess/pkg/response"
	"github.com/hostelmess/hostelmess/pkg/router"
)

// RegisterAPI wires every HTTP route onto the router.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	authController := controllers.NewAuthController(db)
	studentController := controllers.NewStudentController(db)
	groceryController := controllers.NewGroceryController(db)
	mealController := controllers.NewMealController(db)
	purchaseController := controllers.NewPurchaseController(db)
	spendingController := controllers.NewSpendingController(db)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Session endpoints. Login is rate limited to slow brute force.
	api.Post("/auth/login", "auth.login", authController.Login,
		middleware.RateLimit(10, time.Minute))
	api.Post("/auth/logout", "auth.logout", authController.Logout)

	// Everything below needs a valid session.
	session := api.Group("", middleware.Authenticate)
	session.Get("/auth/me", "auth.me", authController.Me)

	// Student-facing routes. Admin sessions can use them too, but they
	// resolve through the session's own student profile.
	session.Get("/groceries", "groceries.storefront", groceryController.Storefront)
	session.Post("/purchases", "purchases.checkout", purchaseController.Checkout)

	student := session.Group("/student")
	student.Get("/profile", "student.profile", studentController.Profile)
	student.Post("/profile", "student.profile.post", studentController.Profile)
	student.Get("/meals", "student.meals", mealController.History)
	student.Post("/meals", "student.meals.post", mealController.History)
	student.Get("/meal-plan", "student.mealplan", mealController.MyPlans)
	student.Post("/meal-plan", "student.mealplan.set", mealController.SetPlan)
	student.Get("/purchases", "student.purchases", purchaseController.History)
	student.Post("/purchases", "student.purchases.post", purchaseController.History)
	student.Get("/daily-breakdown", "student.breakdown", spendingController.MyBreakdown)
	student.Post("/daily-breakdown", "student.breakdown.post", spendingController.MyBreakdown)

	// Admin panel.
	admin := session.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/students", "admin.students", studentController.List)
	admin.Post("/students", "admin.students.create", studentController.Create)
	admin.Delete("/students/{id}", "admin.students.delete", studentController.Delete)

	admin.Get("/groceries", "admin.groceries", groceryController.List)
	admin.Post("/groceries", "admin.groceries.create", groceryController.Create)
	admin.Put("/groceries/{id}", "admin.groceries.update", groceryController.Update)
	admin.Delete("/groceries/{id}", "admin.groceries.delete", groceryController.Delete)

	admin.Get("/meal-plan", "admin.mealplan.board", mealController.Board)
	admin.Post("/meal-plan", "admin.mealplan.set", mealController.AdminSetPlan)
	admin.Post("/mark-meal", "admin.mealplan.mark", mealController.Mark)
	admin.Post("/confirm-meals", "admin.mealplan.confirm", mealController.Confirm)
	admin.Post("/reset-meal-plans", "admin.mealplan.reset", mealController.Reset)
	admin.Get("/today-meals", "admin.mealplan.attendance", mealController.Attendance)

	admin.Get("/purchases", "admin.purchases", purchaseController.List)
	admin.Post("/add-purchase", "admin.purchases.add", purchaseController.AdminAdd)

	admin.Get("/user-spending", "admin.spending.report", spendingController.Report)
	admin.Post("/student-daily-breakdown", "admin.spending.breakdown", spendingController.StudentBreakdown)
	admin.Get("/stats", "admin.stats", spendingController.Stats)
}
