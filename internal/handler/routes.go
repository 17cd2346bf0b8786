package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/finacals/finacals-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, searchLimiter *middleware.RateLimiter, authHandler *AuthHandler, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, reportHandler *ReportHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Expense routes (protected)
	expenses := api.Group("/expenses")
	expenses.Use(authMiddleware.Authenticate())
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/chart-data", expenseHandler.GetChartData)
	expenses.GET("/report", reportHandler.DownloadReport)
	expenses.GET("/search/:term", expenseHandler.SearchExpenses, middleware.SearchRateLimit(searchLimiter))
	expenses.DELETE("/range", expenseHandler.DeleteExpenseRange)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
}
