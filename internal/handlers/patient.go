package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nimmmsh/digiCare/internal/middleware"
	"github.com/Nimmmsh/digiCare/internal/service"
)

// PatientHandler handles the doctor-facing patient routes and the admin
// assignment route.
type PatientHandler struct {
	patientService service.PatientService
}

// NewPatientHandler creates a new PatientHandler instance.
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// UpdateRecordRequest represents the medical-record edit payload. Both
// fields replace the stored values wholesale.
type UpdateRecordRequest struct {
	MedicalNotes string `json:"medical_notes"`
	Phone        string `json:"phone"`
}

// AssignRequest represents the assignment payload.
type AssignRequest struct {
	DoctorID  int64 `json:"doctor_id" binding:"required"`
	PatientID int64 `json:"patient_id" binding:"required"`
}

func patientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return 0, false
	}
	return id, true
}

// View returns one patient's record to an assigned doctor. The denial for an
// unassigned id is identical whether or not the patient exists.
func (h *PatientHandler) View(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)
	id, ok := patientID(c)
	if !ok {
		return
	}

	record, err := h.patientService.PatientRecord(c.Request.Context(), sess.UserID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotAssigned) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "you are not authorized to view this patient",
				"redirect": "/doctor/dashboard",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient": record.Patient,
		"details": record.Details,
	})
}

// Update overwrites an assigned patient's medical notes and phone. The
// details row is created on first submit if the patient has none.
func (h *PatientHandler) Update(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)
	id, ok := patientID(c)
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.patientService.UpdatePatientRecord(c.Request.Context(), sess.UserID, id, req.MedicalNotes, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrNotAssigned) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "you are not authorized to edit this patient",
				"redirect": "/doctor/dashboard",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "patient details updated"})
}

// Assign creates a doctor-patient assignment edge. Admin only.
func (h *PatientHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor_id and patient_id are required"})
		return
	}

	err := h.patientService.Assign(c.Request.Context(), req.DoctorID, req.PatientID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyAssigned) {
			c.JSON(http.StatusConflict, gin.H{"error": "patient is already assigned to this doctor"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create assignment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "patient assigned"})
}
