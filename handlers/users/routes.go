package users

import (
	"github.com/gin-gonic/gin"

	"api/middleware"
	"api/services"
)

// RegisterRoutes registers all routes related to user profiles
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup, tokens *services.TokenService) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware(tokens))
	{
		user.GET("/profile", GetUserProfile)
		user.PUT("/profile", UpdateUserProfile)
	}
}
