package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nimmmsh/digiCare/internal/models"
)

// AssignedPatient pairs a patient with their medical record. Details is nil
// for patients that have no record yet.
type AssignedPatient struct {
	User    models.User
	Details *models.PatientDetails
}

// AssignmentRepository defines the interface for doctor-patient edge operations.
type AssignmentRepository interface {
	Exists(ctx context.Context, doctorID, patientID int64) (bool, error)
	Create(ctx context.Context, assignment *models.DoctorPatient) error
	// PatientsOfDoctor returns every patient assigned to the doctor, ordered
	// by full name, with details attached where present.
	PatientsOfDoctor(ctx context.Context, doctorID int64) ([]AssignedPatient, error)
	// DoctorsOfPatient returns every doctor with an edge to the patient,
	// ordered by full name.
	DoctorsOfPatient(ctx context.Context, patientID int64) ([]models.User, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository instance.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Exists(ctx context.Context, doctorID, patientID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DoctorPatient{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check assignment (%d, %d): %w", doctorID, patientID, err)
	}
	return count > 0, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.DoctorPatient) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment (%d, %d): %w", assignment.DoctorID, assignment.PatientID, err)
	}
	return nil
}

func (r *assignmentRepository) PatientsOfDoctor(ctx context.Context, doctorID int64) ([]AssignedPatient, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN doctor_patient ON doctor_patient.patient_id = users.id").
		Where("doctor_patient.doctor_id = ?", doctorID).
		Order("users.full_name").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patients of doctor %d: %w", doctorID, err)
	}

	patients := make([]AssignedPatient, len(users))
	if len(users) == 0 {
		return patients, nil
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
		patients[i] = AssignedPatient{User: u}
	}

	var details []models.PatientDetails
	err = r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load details for doctor %d: %w", doctorID, err)
	}

	byUser := make(map[int64]*models.PatientDetails, len(details))
	for i := range details {
		byUser[details[i].UserID] = &details[i]
	}
	for i := range patients {
		patients[i].Details = byUser[patients[i].User.ID]
	}

	return patients, nil
}

func (r *assignmentRepository) DoctorsOfPatient(ctx context.Context, patientID int64) ([]models.User, error) {
	var doctors []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN doctor_patient ON doctor_patient.doctor_id = users.id").
		Where("doctor_patient.patient_id = ?", patientID).
		Order("users.full_name").
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors of patient %d: %w", patientID, err)
	}
	return doctors, nil
}
