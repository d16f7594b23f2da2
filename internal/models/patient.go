// Package models contains data models for the patient-management service.
package models

import "time"

// PatientDetails holds the medical record for a user with the patient role.
// At most one row exists per user; the row is optional.
type PatientDetails struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"user_id" gorm:"uniqueIndex;not null"`
	User         User       `json:"user" gorm:"foreignKey:UserID"`
	DateOfBirth  *time.Time `json:"date_of_birth" gorm:"type:date"`
	MedicalNotes string     `json:"medical_notes" gorm:"type:text"`
	Phone        string     `json:"phone" gorm:"size:20"`
}

// TableName returns the database table name for the PatientDetails model.
func (PatientDetails) TableName() string {
	return "patient_details"
}

// DoctorPatient is an assignment edge between a doctor-role user and a
// patient-role user. A doctor has many patients and a patient may have
// several doctors; the pair is unique.
type DoctorPatient struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	DoctorID  int64 `json:"doctor_id" gorm:"not null;uniqueIndex:idx_doctor_patient"`
	PatientID int64 `json:"patient_id" gorm:"not null;uniqueIndex:idx_doctor_patient"`
	Doctor    User  `json:"-" gorm:"foreignKey:DoctorID"`
	Patient   User  `json:"-" gorm:"foreignKey:PatientID"`
}

// TableName returns the database table name for the DoctorPatient model.
func (DoctorPatient) TableName() string {
	return "doctor_patient"
}
