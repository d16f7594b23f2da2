package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nimmmsh/digiCare/internal/models"
)

// PatientRepository defines the interface for patient-record data operations.
type PatientRepository interface {
	// FindDetailsByUserID returns the details row for the given user, or
	// gorm.ErrRecordNotFound (wrapped) when none exists.
	FindDetailsByUserID(ctx context.Context, userID int64) (*models.PatientDetails, error)
	// ListAll returns every details row with the owning user loaded, ordered
	// by the user's full name.
	ListAll(ctx context.Context) ([]models.PatientDetails, error)
	// UpdateMedicalRecord overwrites medical_notes and phone for the given
	// user in a single transaction, creating the details row first if none
	// exists. date_of_birth is never touched through this path.
	UpdateMedicalRecord(ctx context.Context, userID int64, medicalNotes, phone string) error
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new PatientRepository instance.
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) FindDetailsByUserID(ctx context.Context, userID int64) (*models.PatientDetails, error) {
	var details models.PatientDetails
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find patient details for user %d: %w", userID, err)
	}
	return &details, nil
}

func (r *patientRepository) ListAll(ctx context.Context) ([]models.PatientDetails, error) {
	var details []models.PatientDetails
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = patient_details.user_id").
		Order("users.full_name").
		Preload("User.Role").
		Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient details: %w", err)
	}
	return details, nil
}

func (r *patientRepository) UpdateMedicalRecord(ctx context.Context, userID int64, medicalNotes, phone string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var details models.PatientDetails
		if err := tx.Where(models.PatientDetails{UserID: userID}).FirstOrCreate(&details).Error; err != nil {
			return err
		}
		return tx.Model(&details).
			Select("medical_notes", "phone").
			Updates(map[string]interface{}{
				"medical_notes": medicalNotes,
				"phone":         phone,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update medical record for user %d: %w", userID, err)
	}
	return nil
}
