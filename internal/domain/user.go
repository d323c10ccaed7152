package domain

import "time"

// User Model
type User struct {
	ID            uint      `gorm:"primaryKey"`                    // Primary key
	Email         string    `gorm:"size:191;uniqueIndex;not null"` // Unique login email
	PasswordHash  string    `gorm:"not null"`                      // Hashed password, never plaintext
	FirstName     string    `gorm:"size:100"`                      // First name
	LastName      string    `gorm:"size:100"`                      // Last name
	ContactNumber string    `gorm:"size:32"`                       // Phone number
	Street        string    `gorm:"size:191"`                      // Postal address: street
	City          string    `gorm:"size:100"`                      // Postal address: city
	PostalCode    string    `gorm:"size:16"`                       // Postal address: postal code
	RoleID        uint      `gorm:"not null;default:1"`            // Foreign key to Role
	Role          Role      `gorm:"constraint:OnUpdate:CASCADE;"`  // Belongs-to relationship with Role
	Version       uint      `gorm:"not null;default:1"`            // Row version for optimistic updates
	CreatedAt     time.Time // Creation timestamp
	UpdatedAt     time.Time // Last update timestamp
}
