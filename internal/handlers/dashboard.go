package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nimmmsh/digiCare/internal/middleware"
	"github.com/Nimmmsh/digiCare/internal/models"
	"github.com/Nimmmsh/digiCare/internal/service"
)

// DashboardHandler routes each role to its dashboard and serves the
// dashboard data.
type DashboardHandler struct {
	authService    service.AuthService
	patientService service.PatientService
	cookies        *CookieHelper
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(authService service.AuthService, patientService service.PatientService, cookies *CookieHelper) *DashboardHandler {
	return &DashboardHandler{
		authService:    authService,
		patientService: patientService,
		cookies:        cookies,
	}
}

// Route sends the authenticated user to exactly one role dashboard. An
// unrecognized role value ends the session: it cannot occur with seeded data
// and means the row is corrupt.
func (h *DashboardHandler) Route(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required", "redirect": "/login"})
		return
	}

	switch sess.Role {
	case models.RoleAdmin:
		c.Redirect(http.StatusFound, "/admin/dashboard")
	case models.RoleDoctor:
		c.Redirect(http.StatusFound, "/doctor/dashboard")
	case models.RolePatient:
		c.Redirect(http.StatusFound, "/patient/dashboard")
	default:
		log.Printf("user %d has unknown role %q, ending session", sess.UserID, sess.Role)
		if token := h.cookies.SessionToken(c); token != "" {
			_ = h.authService.Logout(c.Request.Context(), token)
		}
		h.cookies.ClearSessionCookie(c)
		c.Redirect(http.StatusFound, "/login")
	}
}

// Admin serves the admin dashboard: every user and every patient record.
func (h *DashboardHandler) Admin(c *gin.Context) {
	overview, err := h.patientService.AdminOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    overview.Users,
		"patients": overview.Patients,
	})
}

// Doctor serves the doctor dashboard: only the patients assigned to the
// logged-in doctor.
func (h *DashboardHandler) Doctor(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)

	assigned, err := h.patientService.AssignedPatients(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	patients := make([]gin.H, len(assigned))
	for i, p := range assigned {
		patients[i] = gin.H{
			"patient": p.User,
			"details": p.Details,
		}
	}

	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// Patient serves the patient dashboard: the logged-in patient's own record
// and assigned doctors, nothing else.
func (h *DashboardHandler) Patient(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)

	record, err := h.patientService.OwnRecord(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient": record.Patient,
		"details": record.Details,
		"doctors": record.Doctors,
	})
}
