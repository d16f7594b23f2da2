package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nimmmsh/digiCare/internal/models"
	"github.com/Nimmmsh/digiCare/internal/repository"
)

var (
	// ErrNotAssigned is returned when a doctor has no assignment edge to the
	// requested patient. It is returned whether or not the patient exists, so
	// a denied request discloses nothing about other patients.
	ErrNotAssigned = errors.New("patient not assigned to this doctor")
	// ErrAlreadyAssigned is returned when the doctor-patient pair already has
	// an edge.
	ErrAlreadyAssigned = errors.New("patient already assigned to this doctor")
)

// AdminOverview is everything the admin dashboard shows.
type AdminOverview struct {
	Users    []models.User
	Patients []models.PatientDetails
}

// PatientRecord is one patient as seen by an authorized doctor. Details is
// nil when no record exists yet.
type PatientRecord struct {
	Patient models.User
	Details *models.PatientDetails
}

// OwnRecord is a patient's view of their own data.
type OwnRecord struct {
	Patient models.User
	Details *models.PatientDetails
	Doctors []models.User
}

// PatientService is the access-scoped query layer: every method's result set
// is bounded by the caller's role and identity.
type PatientService interface {
	// AdminOverview returns all users (by role then name) and all patient
	// records (by patient name). Admin scope.
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	// AssignedPatients returns the patients assigned to the doctor. A doctor
	// with no assignments gets an empty list.
	AssignedPatients(ctx context.Context, doctorID int64) ([]repository.AssignedPatient, error)
	// PatientRecord returns one assigned patient, or ErrNotAssigned.
	PatientRecord(ctx context.Context, doctorID, patientID int64) (*PatientRecord, error)
	// UpdatePatientRecord overwrites medical_notes and phone for an assigned
	// patient. The details row is created on first submit if absent; viewing
	// never creates it.
	UpdatePatientRecord(ctx context.Context, doctorID, patientID int64, medicalNotes, phone string) error
	// OwnRecord returns the patient's own user row, details, and doctors.
	OwnRecord(ctx context.Context, userID int64) (*OwnRecord, error)
	// Assign creates a doctor-patient edge, or ErrAlreadyAssigned.
	Assign(ctx context.Context, doctorID, patientID int64) error
}

type patientService struct {
	userRepo       repository.UserRepository
	patientRepo    repository.PatientRepository
	assignmentRepo repository.AssignmentRepository
}

// NewPatientService creates a new PatientService instance.
func NewPatientService(userRepo repository.UserRepository, patientRepo repository.PatientRepository, assignmentRepo repository.AssignmentRepository) PatientService {
	return &patientService{
		userRepo:       userRepo,
		patientRepo:    patientRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *patientService) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patientRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminOverview{Users: users, Patients: patients}, nil
}

func (s *patientService) AssignedPatients(ctx context.Context, doctorID int64) ([]repository.AssignedPatient, error) {
	return s.assignmentRepo.PatientsOfDoctor(ctx, doctorID)
}

// requireAssignment is the one guard on the doctor paths. It never reports
// whether the patient id exists.
func (s *patientService) requireAssignment(ctx context.Context, doctorID, patientID int64) error {
	assigned, err := s.assignmentRepo.Exists(ctx, doctorID, patientID)
	if err != nil {
		return err
	}
	if !assigned {
		return ErrNotAssigned
	}
	return nil
}

func (s *patientService) PatientRecord(ctx context.Context, doctorID, patientID int64) (*PatientRecord, error) {
	if err := s.requireAssignment(ctx, doctorID, patientID); err != nil {
		return nil, err
	}

	patient, err := s.userRepo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	record := &PatientRecord{Patient: *patient}
	details, err := s.patientRepo.FindDetailsByUserID(ctx, patientID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		record.Details = details
	}

	return record, nil
}

func (s *patientService) UpdatePatientRecord(ctx context.Context, doctorID, patientID int64, medicalNotes, phone string) error {
	if err := s.requireAssignment(ctx, doctorID, patientID); err != nil {
		return err
	}
	return s.patientRepo.UpdateMedicalRecord(ctx, patientID, medicalNotes, phone)
}

func (s *patientService) OwnRecord(ctx context.Context, userID int64) (*OwnRecord, error) {
	patient, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	record := &OwnRecord{Patient: *patient}

	details, err := s.patientRepo.FindDetailsByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		record.Details = details
	}

	doctors, err := s.assignmentRepo.DoctorsOfPatient(ctx, userID)
	if err != nil {
		return nil, err
	}
	record.Doctors = doctors

	return record, nil
}

func (s *patientService) Assign(ctx context.Context, doctorID, patientID int64) error {
	assigned, err := s.assignmentRepo.Exists(ctx, doctorID, patientID)
	if err != nil {
		return err
	}
	if assigned {
		return ErrAlreadyAssigned
	}

	err = s.assignmentRepo.Create(ctx, &models.DoctorPatient{
		DoctorID:  doctorID,
		PatientID: patientID,
	})
	if err != nil {
		// The unique constraint backstops the existence check under
		// concurrent assignment of the same pair.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("failed to assign patient %d to doctor %d: %w", patientID, doctorID, err)
	}
	return nil
}
