// Package routes defines HTTP routes for the patient-management service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nimmmsh/digiCare/internal/handlers"
	"github.com/Nimmmsh/digiCare/internal/middleware"
	"github.com/Nimmmsh/digiCare/internal/models"
	"github.com/Nimmmsh/digiCare/internal/service"
)

// Handlers bundles everything Setup needs to wire the router.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Patient   *handlers.PatientHandler
	Health    *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, auth service.AuthService, allowedOrigins []string) {
	router.Use(middleware.CSRF(middleware.CSRFConfig{AllowedOrigins: allowedOrigins}))

	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/login", h.Auth.Login)
	router.POST("/logout", h.Auth.Logout)

	// Any authenticated role; redirects to the role dashboard.
	router.GET("/dashboard", middleware.RequireSession(auth), h.Dashboard.Route)

	admin := router.Group("/admin", middleware.RequireRoles(auth, models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard.Admin)
		admin.POST("/assignments", h.Patient.Assign)
	}

	doctor := router.Group("/doctor", middleware.RequireRoles(auth, models.RoleDoctor))
	{
		doctor.GET("/dashboard", h.Dashboard.Doctor)
		doctor.GET("/patients/:id", h.Patient.View)
		doctor.PUT("/patients/:id", h.Patient.Update)
	}

	patient := router.Group("/patient", middleware.RequireRoles(auth, models.RolePatient))
	{
		patient.GET("/dashboard", h.Dashboard.Patient)
	}
}
