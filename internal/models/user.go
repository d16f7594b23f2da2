// Package models contains data models for the patient-management service.
package models

import "golang.org/x/crypto/bcrypt"

// User is any account in the system: admins, doctors, and patients all live
// in one table. The role decides what they can see and do.
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:256;not null"`
	FullName     string `json:"full_name" gorm:"size:120;not null"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	RoleID       int64  `json:"role_id" gorm:"not null"`
	Role         Role   `json:"role" gorm:"foreignKey:RoleID"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// SetPassword hashes the plaintext with bcrypt and stores the hash.
// The plaintext is never persisted or logged.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the plaintext against the stored hash. A missing or
// malformed hash verifies false, never panics.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}
