package main

import (
	"log"
	"os"

	"github.com/digital-companion/companion/db"
	"github.com/digital-companion/companion/internal/auth"
	"github.com/digital-companion/companion/internal/router"
	"github.com/digital-companion/companion/internal/types"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	types.InitAllowedOrigins()

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "5000"
		log.Println("PORT not set, defaulting to 5000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
