// Package main seeds the database with demo data. Run it once after the
// containers are up.
package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Nimmmsh/digiCare/internal/config"
	"github.com/Nimmmsh/digiCare/internal/database"
	"github.com/Nimmmsh/digiCare/internal/seed"
)

const (
	maxRetries = 30
	retryDelay = 2 * time.Second
)

// waitForDB retries the connection; the database container may still be
// initializing when this runs.
func waitForDB(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = database.Connect(cfg)
		if err == nil {
			return db, nil
		}
		log.Printf("Attempt %d/%d: database not ready yet...", attempt, maxRetries)
		time.Sleep(retryDelay)
	}
	return nil, err
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := config.Load()

	db, err := waitForDB(cfg)
	if err != nil {
		log.Fatal("Could not connect to database: ", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	if err := seed.Seed(db); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}

	log.Println("Database seeded successfully!")
	log.Println("Demo credentials:")
	log.Println("  Admin:   admin / admin123")
	log.Println("  Doctor:  dr_smith / doctor123")
	log.Println("  Doctor:  dr_jones / doctor123")
	log.Println("  Patient: john_doe / patient123")
	log.Println("  Patient: jane_wilson / patient123")
	log.Println("  Patient: bob_brown / patient123")
}
