package app

import (
	"github.com/gorilla/mux"

	"github.com/spenso/spenso/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.ListCategories).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.CreateCategory).Methods("POST")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.GetCategory).Methods("GET")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.UpdateCategory).Methods("PUT")
	r.HandleFunc("/api/category/{categoryId}", deps.CategoryHandler.DeleteCategory).Methods("DELETE")

	// Plans
	r.HandleFunc("/api/plan", deps.PlanHandler.ListPlans).Methods("GET")
	r.HandleFunc("/api/plan", deps.PlanHandler.CreatePlan).Methods("POST")
	r.HandleFunc("/api/plan/current", deps.PlanHandler.GetCurrentPlan).Methods("GET")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.GetPlan).Methods("GET")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.UpdatePlan).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}", deps.PlanHandler.DeletePlan).Methods("DELETE")

	// Plan items
	r.HandleFunc("/api/plan/{planId}/item", deps.PlanHandler.RegisterItem).Methods("POST")
	r.HandleFunc("/api/plan/{planId}/item/{itemId}", deps.PlanHandler.UpdateItem).Methods("PUT")
	r.HandleFunc("/api/plan/{planId}/item/{itemId}", deps.PlanHandler.DeleteItem).Methods("DELETE")

	// Tracking
	r.HandleFunc("/api/plan/{planId}/tracking", deps.TrackingHandler.GetOverview).Methods("GET")
	r.HandleFunc("/api/plan/{planId}/item/{itemId}/completion", deps.TrackingHandler.SetItemCompletion).Methods("PUT")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.ListExpenses).Queries("planId", "{planId}").Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Currency conversion
	r.HandleFunc("/api/currency/convert", deps.CurrencyHandler.Convert).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
}
