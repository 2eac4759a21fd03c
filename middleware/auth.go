package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"api/database"
	"api/models"
	"api/services"
	"api/utils/response"
)

const (
	// UserCacheKeyPrefix prefixes the redis key caching the authenticated
	// user's record. Profile updates must invalidate it.
	UserCacheKeyPrefix = "user_session:"

	userContextKey = "user"

	ErrNoTokenProvided = "No token provided"
	ErrInvalidToken    = "Invalid or expired token"
	ErrUserNotFound    = "User not found"
	ErrAccountBlocked  = "Your account has been blocked"
)

// AuthMiddleware verifies the bearer (or cookie) token with the injected
// token service, loads the user and stores it on the context. The user
// lookup goes through the redis session cache first.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoTokenProvided})
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}

		ctx := c.Request.Context()
		cacheKey := UserCacheKeyPrefix + userID

		var user models.User
		if found, _ := database.GetFromCache(ctx, cacheKey, &user); !found {
			if err := database.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// The token verified, so the user existed when it was
					// minted. A missing record now is an internal
					// inconsistency, not a client error.
					log.Printf("Authenticated user %s no longer exists", userID)
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUserNotFound})
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
				return
			}
			if err := database.SetToCache(ctx, cacheKey, user); err != nil {
				log.Printf("Failed to cache user session: %v", err)
			}
		}

		if user.Blocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrAccountBlocked})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user stored by
// AuthMiddleware. On failure the error response has already been written.
func GetUserFromRequest(c *gin.Context) (models.User, error) {
	value, exists := c.Get(userContextKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, ErrNoTokenProvided)
		return models.User{}, errors.New("no authenticated user on context")
	}
	return value.(models.User), nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
