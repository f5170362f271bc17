package routes

import (
	"net/http"

	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/handler"
	"github.com/templui/goalpace/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	goal := handler.NewGoalHandler(app.GoalService)
	sale := handler.NewSaleHandler(app.SaleService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/can-create", middleware.RequireAuth(goal.CanCreate))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Sales and ad spend
	mux.HandleFunc("POST /api/sales", middleware.RequireAuth(sale.RecordSale))
	mux.HandleFunc("POST /api/ad-spend", middleware.RequireAuth(sale.RecordAdSpend))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.AuthMiddleware(app.AuthService), // Auth before logging so requests carry the user id
		middleware.RequestLogging,
	)

	return handler
}
