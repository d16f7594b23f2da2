// Package models contains data models for the patient-management service.
package models

// Role names. Reference data, created once at seeding.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Role determines which rows a user may see and edit.
type Role struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:20;uniqueIndex;not null"`
}

// TableName returns the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
