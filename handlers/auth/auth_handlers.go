package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"api/utils/response"
)

// Login authenticates a user
// @Summary Login
// @Description Authenticate with email and password, returns a signed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Same message for unknown email and bad password
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	if user.Blocked {
		response.Error(c, http.StatusUnauthorized, ErrAccountBlocked)
		return
	}

	token, err := tokens.Generate(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	now := time.Now()
	if err := database.DB.Model(&user).Update("last_connected", now).Error; err != nil {
		log.Printf("Failed to update last_connected for user %s: %v", user.ID, err)
	}

	setCookieToken(c, token, req.RememberMe)

	c.JSON(http.StatusOK, AuthResponse{
		Token:         token,
		UserID:        user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		LastConnected: &now,
		Blocked:       user.Blocked,
	})
}

// RegisterUser creates a new account
// @Summary Register
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} models.User
// @Failure 400,409 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, ErrEmailInUse)
		return
	} else if err != gorm.ErrRecordNotFound {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{
		Email:       req.Email,
		Password:    hashed,
		DisplayName: req.DisplayName,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// CheckAuth returns the authenticated user
// @Summary Check authentication
// @Description Return the user matching the presented token
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie
// @Summary Logout
// @Description Clear the authentication cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": ErrLogoutSuccess})
}
