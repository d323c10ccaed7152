package domain

import "time"

// Car Model
type Car struct {
	ID                 uint    `gorm:"primaryKey"`                   // Primary key
	Brand              string  `gorm:"size:64;not null"`             // Manufacturer
	Model              string  `gorm:"size:64;not null"`             // Model name
	Year               int     // Production year
	RegistrationNumber string  `gorm:"size:16;uniqueIndex;not null"` // Plate number
	PricePerDay        float64 `gorm:"not null;default:0"`           // Daily rental price
}

// RentalRecord Model links a user to a car for an interval
type RentalRecord struct {
	ID          uint      `gorm:"primaryKey"`                                     // Primary key
	UserID      uint      `gorm:"index:idx_rental_active;not null"`               // Foreign key to User
	CarID       uint      `gorm:"not null"`                                       // Foreign key to Car
	Car         Car       `gorm:"constraint:OnDelete:CASCADE;"`                   // Belongs-to relationship with Car
	RentedFrom  time.Time // Start of the rental
	RentedTo    time.Time // Planned end of the rental
	IsGivenBack bool      `gorm:"index:idx_rental_active;not null;default:false"` // Returned flag
}
