package v1

import (
	"api/handlers/auth"
	"api/handlers/puzzles"
	"api/handlers/users"
	"api/middleware"
	"api/services"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine, tokens *services.TokenService) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	RegisterSupportRoutes(v1)
	auth.RegisterRoutes(v1, tokens)
	puzzles.RegisterRoutes(v1, tokens)
	users.RegisterRoutes(v1, tokens)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
