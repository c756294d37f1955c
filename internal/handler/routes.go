package handler

import (
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, profileHandler *ProfileHandler, budgetHandler *BudgetHandler, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Category routes (public reference data)
	api.GET("/categories", categoryHandler.GetCategories)

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	profile.Use(middleware.RateLimitMiddleware(rateLimiter))
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.DELETE("", profileHandler.DeleteProfile)

	// Budget routes (protected)
	budgets := api.Group("/budgets")
	budgets.Use(authMiddleware.Authenticate())
	budgets.Use(middleware.RateLimitMiddleware(rateLimiter))
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.Use(middleware.RateLimitMiddleware(rateLimiter))
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:budgetId", transactionHandler.GetTransactionsByBudget)
}
