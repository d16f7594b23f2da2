// Package seed installs the demo dataset: three roles, one admin, two
// doctors, and three patients, with jane_wilson assigned to both doctors.
package seed

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Nimmmsh/digiCare/internal/models"
)

type demoUser struct {
	username string
	password string
	fullName string
	email    string
	roleID   int64
}

var demoUsers = []demoUser{
	{"admin", "admin123", "System Administrator", "admin@hospital.com", 1},
	{"dr_smith", "doctor123", "Dr. Sarah Smith", "dr.smith@hospital.com", 2},
	{"dr_jones", "doctor123", "Dr. Michael Jones", "dr.jones@hospital.com", 2},
	{"john_doe", "patient123", "John Doe", "john.doe@email.com", 3},
	{"jane_wilson", "patient123", "Jane Wilson", "jane.wilson@email.com", 3},
	{"bob_brown", "patient123", "Bob Brown", "bob.brown@email.com", 3},
}

var demoNotes = map[string][2]string{
	"john_doe":    {"Regular checkup. Blood pressure normal. No concerns.", "(555) 123-4567"},
	"jane_wilson": {"Mild allergies to pollen. Prescribed antihistamines.", "(555) 234-5678"},
	"bob_brown":   {"Type 2 diabetes. On metformin. Monitor blood sugar levels.", "(555) 345-6789"},
}

// demoAssignments maps doctors to patients by username. jane_wilson is
// shared by both doctors.
var demoAssignments = map[string][]string{
	"dr_smith": {"john_doe", "jane_wilson"},
	"dr_jones": {"jane_wilson", "bob_brown"},
}

// Seed inserts the demo dataset. It is idempotent: a database that already
// has roles is left untouched.
func Seed(db *gorm.DB) error {
	var roleCount int64
	if err := db.Model(&models.Role{}).Count(&roleCount).Error; err != nil {
		return fmt.Errorf("failed to check existing roles: %w", err)
	}
	if roleCount > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		roles := []models.Role{
			{ID: 1, Name: models.RoleAdmin},
			{ID: 2, Name: models.RoleDoctor},
			{ID: 3, Name: models.RolePatient},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}

		byUsername := make(map[string]*models.User, len(demoUsers))
		for _, du := range demoUsers {
			user := &models.User{
				Username: du.username,
				FullName: du.fullName,
				Email:    du.email,
				RoleID:   du.roleID,
			}
			if err := user.SetPassword(du.password); err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", du.username, err)
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", du.username, err)
			}
			byUsername[du.username] = user
		}

		for username, notes := range demoNotes {
			details := &models.PatientDetails{
				UserID:       byUsername[username].ID,
				MedicalNotes: notes[0],
				Phone:        notes[1],
			}
			if err := tx.Create(details).Error; err != nil {
				return fmt.Errorf("failed to seed details for %s: %w", username, err)
			}
		}

		for doctor, patients := range demoAssignments {
			for _, patient := range patients {
				edge := &models.DoctorPatient{
					DoctorID:  byUsername[doctor].ID,
					PatientID: byUsername[patient].ID,
				}
				if err := tx.Create(edge).Error; err != nil {
					return fmt.Errorf("failed to seed assignment %s -> %s: %w", doctor, patient, err)
				}
			}
		}

		return nil
	})
}
