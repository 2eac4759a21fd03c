package auth

import (
	"github.com/gin-gonic/gin"

	"api/middleware"
	"api/services"
)

var tokens *services.TokenService

// RegisterRoutes registers all routes related to authentication
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup, tokenService *services.TokenService) {
	tokens = tokenService

	auth := r.Group("/auth")
	{
		auth.POST("/login", Login)
		auth.POST("/register", RegisterUser)
		auth.GET("/check", middleware.AuthMiddleware(tokens), CheckAuth)
		auth.POST("/logout", Logout)
		auth.POST("/request-reset", RequestPasswordReset)
		auth.POST("/reset-password", ResetPassword)
	}
}
