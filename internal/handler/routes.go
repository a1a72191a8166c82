package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, ownerHandler *OwnerHandler, categoryHandler *CategoryHandler, billHandler *BillHandler, accountHandler *AccountHandler, transactionHandler *TransactionHandler, budgetHandler *BudgetHandler, closingHandler *ClosingHandler, incomeHandler *IncomeHandler, wsHandler *WebSocketHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/ws", wsHandler.HandleWS)

	// API version 1
	api := e.Group("/api/v1")

	// Owner routes
	owners := api.Group("/owners")
	owners.GET("", ownerHandler.GetOwners)
	owners.PUT("/:id", ownerHandler.RenameOwner)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.POST("/get-or-create", categoryHandler.GetOrCreateCategory)
	categories.POST("/seed", categoryHandler.SeedCategories)
	categories.PUT("/:id", categoryHandler.RenameCategory)
	categories.PATCH("/:id/active", categoryHandler.SetCategoryActive)

	// Bill routes
	bills := api.Group("/bills")
	bills.GET("", billHandler.GetBills)
	bills.POST("", billHandler.CreateBill)
	bills.PATCH("/:id/active", billHandler.SetBillActive)
	bills.GET("/due/:month", billHandler.GetBillsDue)
	bills.PUT("/:id/payments/:month", billHandler.SetBillPaid)

	// Account and snapshot routes
	accounts := api.Group("/accounts")
	accounts.GET("", accountHandler.GetAccounts)
	accounts.POST("", accountHandler.CreateAccount)
	api.GET("/snapshots", accountHandler.GetSnapshots)
	api.PUT("/snapshots", accountHandler.UpsertSnapshot)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/import", transactionHandler.ImportTransactions)
	transactions.GET("/export", transactionHandler.ExportTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	api.PUT("/budgets", budgetHandler.UpsertBudget)
	api.GET("/budgets/:month", budgetHandler.GetBudgets)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/planned-vs-actual/:month", budgetHandler.GetPlannedVsActual)
	reports.GET("/debt-progress/:month", accountHandler.GetDebtProgress)

	// Month closeout routes
	months := api.Group("/months")
	months.POST("/:month/close", closingHandler.CloseMonth)
	months.GET("/:month/status", closingHandler.GetMonthStatus)
	months.GET("/closings", closingHandler.GetClosings)
	months.GET("/known", closingHandler.GetKnownMonths)

	// Confirmation gate
	api.POST("/confirmations/cancel", closingHandler.CancelConfirmation)

	// Setup
	api.GET("/setup/first-run", closingHandler.GetFirstRun)

	// Income routes
	income := api.Group("/income")
	income.GET("", incomeHandler.GetIncomes)
	income.POST("", incomeHandler.CreateIncome)
}
