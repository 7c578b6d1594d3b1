package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/config"
	"github.com/yeremiapane/reservation-app/database"
	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/middlewares"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/router"
	"github.com/yeremiapane/reservation-app/utils"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database supaya bisa dipakai lintas package
	utils.InitDB(db)

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := database.SeedDemoData(db); err != nil {
			utils.ErrorLogger.Printf("Error seeding demo data: %v", err)
		}
	}

	// Kafka opsional; tanpa broker event hanya lewat WebSocket
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "reservation-events"
		}
		events.InitKafka(strings.Split(broker, ","), topic)
		utils.InfoLogger.Printf("Kafka publisher enabled (broker=%s topic=%s)", broker, topic)
	}

	// Setup rate limiter (50 requests per second per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Restaurant{},
		&models.OpeningHour{},
		&models.Table{},
		&models.Reservation{},
		&models.BlockedSlot{},
		&models.WaitlistEntry{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
