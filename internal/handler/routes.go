package handler

import (
	"github.com/folioworks/folio-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, projectHandler *ProjectHandler, reportHandler *ReportHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)

	// Project routes (protected)
	projects := api.Group("/projects")
	projects.Use(authMiddleware.Authenticate())
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.POST("/:id/import", projectHandler.ImportWorkbook)
	projects.POST("/:id/forecast", projectHandler.AddForecast)

	// Portfolio routes (protected, rate limited: generation is the
	// expensive path)
	projects.POST("/:id/portfolio", reportHandler.GeneratePortfolio, middleware.RateLimitMiddleware(rateLimiter))
	projects.GET("/:id/portfolio/preview", reportHandler.PreviewPortfolio)
}
