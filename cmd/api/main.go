// Package main is the entry point for the patient-management service.
package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Nimmmsh/digiCare/internal/config"
	"github.com/Nimmmsh/digiCare/internal/database"
	"github.com/Nimmmsh/digiCare/internal/handlers"
	"github.com/Nimmmsh/digiCare/internal/repository"
	"github.com/Nimmmsh/digiCare/internal/routes"
	"github.com/Nimmmsh/digiCare/internal/service"
	"github.com/Nimmmsh/digiCare/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}

	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	tokenService := service.NewTokenService(cfg.SessionSecret, cfg.SessionExpiry)
	if tokenService == nil {
		log.Fatal("SESSION_SECRET must be at least 32 bytes")
	}
	authService := service.NewAuthService(userRepo, tokenService, redisClient)
	patientService := service.NewPatientService(userRepo, patientRepo, assignmentRepo)

	cookies := handlers.NewCookieHelper(handlers.CookieConfig{
		Path:     "/",
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.Setup(router, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cookies),
		Dashboard: handlers.NewDashboardHandler(authService, patientService, cookies),
		Patient:   handlers.NewPatientHandler(patientService),
		Health:    handlers.NewHealthHandler(),
	}, authService, cfg.AllowedOrigins)

	log.Printf("Starting patient-management service on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
