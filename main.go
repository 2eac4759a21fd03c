package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"api/config"
	"api/database"
	"api/middleware"
	v1 "api/routes/v1"
	"api/services"

	_ "api/docs"
)

// @title NandHub API
// @version 1.0
// @description Backend API for the NandHub logic-puzzle platform
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.LoadEnv()

	database.InitDB()
	database.InitRedis()

	tokens := services.NewTokenService(config.JWTSecret, 24*time.Hour)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	middleware.UpdateSystemMetrics()

	v1.Register(r, tokens)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Listening on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
