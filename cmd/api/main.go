package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/casafin/casafin-backend/internal/config"
	"github.com/casafin/casafin-backend/internal/handler"
	"github.com/casafin/casafin-backend/internal/middleware"
	"github.com/casafin/casafin-backend/internal/repository/sqlite"
	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open database and run migrations
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()
	log.Info().Str("path", cfg.DBPath).Msg("Database ready")

	// Initialize repositories
	ownerRepo := sqlite.NewOwnerRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	billRepo := sqlite.NewBillRepository(db)
	accountRepo := sqlite.NewAccountRepository(db)
	transactionRepo := sqlite.NewTransactionRepository(db)
	budgetRepo := sqlite.NewBudgetRepository(db)
	closingRepo := sqlite.NewClosingRepository(db)
	incomeRepo := sqlite.NewIncomeRepository(db)

	// Seed the three fixed owners
	if err := ownerRepo.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed owners")
	}

	// Initialize services
	gate := service.NewConfirmationGate(closingRepo)
	ownerService := service.NewOwnerService(ownerRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	billService := service.NewBillService(billRepo, ownerRepo, gate)
	accountService := service.NewAccountService(accountRepo, ownerRepo, gate)
	transactionService := service.NewTransactionService(transactionRepo, ownerRepo, categoryRepo, gate)
	budgetService := service.NewBudgetService(budgetRepo, ownerRepo, categoryRepo, transactionRepo, gate)
	closingService := service.NewClosingService(closingRepo, billRepo, cfg.KnownMonthsLimit)
	csvService := service.NewCSVService(transactionRepo, ownerRepo, categoryRepo, gate)
	incomeService := service.NewIncomeService(incomeRepo, ownerRepo, gate)
	setupService := service.NewSetupService(categoryRepo, billRepo, accountRepo, transactionRepo)

	// WebSocket hub
	hub := websocket.NewHub()

	// Initialize handlers
	ownerHandler := handler.NewOwnerHandler(ownerService)
	categoryHandler := handler.NewCategoryHandler(categoryService, hub)
	billHandler := handler.NewBillHandler(billService, hub)
	accountHandler := handler.NewAccountHandler(accountService, hub)
	transactionHandler := handler.NewTransactionHandler(transactionService, csvService, hub)
	budgetHandler := handler.NewBudgetHandler(budgetService, hub)
	closingHandler := handler.NewClosingHandler(closingService, setupService, gate, hub)
	incomeHandler := handler.NewIncomeHandler(incomeService, hub)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Rate limiting
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Register API routes
	handler.RegisterRoutes(e, ownerHandler, categoryHandler, billHandler, accountHandler, transactionHandler, budgetHandler, closingHandler, incomeHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
