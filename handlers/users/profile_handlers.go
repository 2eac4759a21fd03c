package users

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"api/database"
	"api/middleware"
	"api/models"
	"api/utils/response"
)

// UpdateProfileRequest model for profile updates
type UpdateProfileRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
}

// GetUserProfile retrieves the authenticated user's profile
// @Summary Get User Profile
// @Description Get the profile information of the authenticated user
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /user/profile [get]
// @Security Bearer
func GetUserProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUserProfile updates the authenticated user's profile
// @Summary Update User Profile
// @Description Update the profile information of the authenticated user. Author names on already submitted puzzles keep their submission-time snapshot.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body UpdateProfileRequest true "User Profile"
// @Success 200 {object} models.User
// @Failure 400,401,500 {object} map[string]string
// @Router /user/profile [put]
// @Security Bearer
func UpdateUserProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return // Error already handled by middleware
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updatedFields := map[string]interface{}{
		"email":        req.Email,
		"display_name": req.DisplayName,
	}
	if err := database.DB.Model(&user).Updates(updatedFields).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	var updatedUser models.User
	if err := database.DB.First(&updatedUser, "id = ?", user.ID).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Profile updated but failed to retrieve updated data")
		return
	}

	// Invalidate the cached user session
	cacheKey := middleware.UserCacheKeyPrefix + user.ID
	if err := database.REDIS.Del(c, cacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate user session cache: %v", err)
	}

	c.JSON(http.StatusOK, updatedUser)
}
