package main

import (
	"errors"
	"log"
	"net/http"

	"easy_case_app_go/config"
	"easy_case_app_go/db"
	"easy_case_app_go/handlers"
	"easy_case_app_go/logger"
	"easy_case_app_go/middleware"
	"easy_case_app_go/models"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg)

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Case{}, &models.Hearing{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Errors are rendered as {"error": "..."} JSON bodies
	e.HTTPErrorHandler = errorHandler

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(logger.RequestLogger())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.GET("/health", handlers.HealthHandler)
	e.POST("/auth/signup", handlers.SignupHandler, middleware.SignupRateLimiter.Middleware())
	e.POST("/auth/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())

	// Protected routes (bearer token required)
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/auth/me", handlers.MeHandler)

		clients := protected.Group("/api/clients")
		{
			clients.GET("", handlers.GetClientsHandler)
			clients.POST("", handlers.CreateClientHandler)
			clients.POST("/import", handlers.ImportClientsHandler)
			clients.GET("/:id", handlers.GetClientHandler)
			clients.PUT("/:id", handlers.UpdateClientHandler)
			clients.DELETE("/:id", handlers.DeleteClientHandler)
		}

		cases := protected.Group("/api/cases")
		{
			cases.GET("", handlers.GetCasesHandler)
			cases.POST("", handlers.CreateCaseHandler)
			// Registered before /:id so "next-number" is not taken as an ID
			cases.GET("/next-number", handlers.GetNextCaseNumberHandler)
			cases.GET("/:id", handlers.GetCaseHandler)
			cases.PUT("/:id", handlers.UpdateCaseHandler)
			cases.PATCH("/:id/close", handlers.CloseCaseHandler)
			cases.DELETE("/:id", handlers.DeleteCaseHandler)
		}

		hearings := protected.Group("/api/hearings")
		{
			hearings.GET("", handlers.GetHearingsHandler)
			hearings.POST("", handlers.CreateHearingHandler)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// errorHandler maps errors to the JSON error body the frontend expects
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": message})
}
