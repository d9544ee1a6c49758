package models

import "time"

const (
	// RoleStudent marks accounts that submit translations.
	RoleStudent = "student"
	// RoleInstructor marks accounts that author exercises.
	RoleInstructor = "instructor"
)

// Account represents a registered user of the platform. Accounts are created
// at registration and never mutated afterwards.
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsStudent reports whether the account belongs to a student.
func (a Account) IsStudent() bool {
	return a.Role == RoleStudent
}

// IsInstructor reports whether the account belongs to an instructor.
func (a Account) IsInstructor() bool {
	return a.Role == RoleInstructor
}
