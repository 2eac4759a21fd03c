package database

import (
	"fmt"
	"log"

	"api/config"
	"api/models"
	"api/services"
	"api/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var DefaultPassword = "admin"

// InitDB initializes the database connection, migrates the models and
// populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Puzzle{},
		&models.Completion{},
		&models.PasswordReset{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Populate populates the database with default values if needed
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser == 0 {
		// Create default user admin with a default hashed password either
		// from the .env file or the DefaultPassword constant
		password := DefaultPassword
		if config.DefaultPassword != "" {
			password = config.DefaultPassword
		}

		password, err := utils.HashPassword(password)
		if err != nil {
			panic(err)
		}

		user := models.User{
			Email:       "admin@nandhub.io",
			DisplayName: "Admin",
			Password:    password,
		}
		DB.Create(&user)
		log.Println("Default user admin created")
	}

	// Seed the official starter puzzles once
	var countPuzzle int64
	DB.Model(&models.Puzzle{}).Where("author IS NULL").Count(&countPuzzle)
	if countPuzzle == 0 {
		for _, seed := range officialSeeds {
			data, err := services.EncodeGameData(seed.game)
			if err != nil {
				log.Println("failed to encode seed puzzle: ", err)
				continue
			}
			puzzle := models.Puzzle{
				ShortKey:          seed.shortKey,
				Title:             seed.title,
				Description:       seed.description,
				Data:              data,
				MinimumComponents: seed.minimum,
			}
			if err := DB.Create(&puzzle).Error; err != nil {
				log.Println("failed to seed puzzle: ", err)
				continue
			}
		}
		log.Printf("Seeded %d official puzzles", len(officialSeeds))
	}
}

type puzzleSeed struct {
	shortKey    string
	title       string
	description string
	minimum     int
	game        map[string]interface{}
}

var officialSeeds = []puzzleSeed{
	{
		shortKey:    "not-gate",
		minimum:     1,
		title:       "NOT Gate",
		description: "Invert a single input using NAND gates only.",
		game:        map[string]interface{}{"inputs": 1, "outputs": 1, "truth": []int{1, 0}},
	},
	{
		shortKey:    "and-gate",
		minimum:     2,
		title:       "AND Gate",
		description: "Build AND from NAND.",
		game:        map[string]interface{}{"inputs": 2, "outputs": 1, "truth": []int{0, 0, 0, 1}},
	},
	{
		shortKey:    "xor-gate",
		minimum:     4,
		title:       "XOR Gate",
		description: "Build XOR from NAND.",
		game:        map[string]interface{}{"inputs": 2, "outputs": 1, "truth": []int{0, 1, 1, 0}},
	},
	{
		shortKey:    "half-adder",
		minimum:     5,
		title:       "Half Adder",
		description: "Sum and carry for two bits.",
		game:        map[string]interface{}{"inputs": 2, "outputs": 2, "truth": []int{0, 0, 1, 0, 1, 0, 0, 1}},
	},
}
