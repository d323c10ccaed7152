package service

// UserProfileView is the denormalized profile handed to the presentation layer
type UserProfileView struct {
	Email              string    `json:"email" binding:"required,email"` // Identity key
	FirstName          string    `json:"first_name"`                     // First name
	LastName           string    `json:"last_name"`                      // Last name
	ContactNumber      string    `json:"contact_number"`                 // Phone number
	Street             string    `json:"street"`                         // Postal address: street
	City               string    `json:"city"`                           // Postal address: city
	PostalCode         string    `json:"postal_code"`                    // Postal address: postal code
	Role               string    `json:"role"`                           // Role display name
	NumberRentedCars   int64     `json:"number_rented_cars"`             // Active rentals
	Cars               []CarView `json:"cars,omitempty"`                 // Currently rented cars
	NewPassword        *string   `json:"new_password,omitempty"`         // Optional new password
	ConfirmNewPassword *string   `json:"confirm_new_password,omitempty"` // Optional confirmation
}

// CarView is the projection of a rented car
type CarView struct {
	ID                 uint    `json:"id"`                  // Car ID
	Brand              string  `json:"brand"`               // Manufacturer
	Model              string  `json:"model"`               // Model name
	Year               int     `json:"year"`                // Production year
	RegistrationNumber string  `json:"registration_number"` // Plate number
	PricePerDay        float64 `json:"price_per_day"`       // Daily price
}

// PrincipalClaims are the identity facts attached to an authenticated session
type PrincipalClaims struct {
	SubjectID uint   `json:"sub_id"` // User ID
	Email     string `json:"email"`  // User email
	Role      string `json:"role"`   // Role display name
}

// NewUserRequest carries the fields needed to register a user
type NewUserRequest struct {
	Email     string `validate:"required,email,max=191"` // Login email
	FirstName string `validate:"max=100"`                // First name
	LastName  string `validate:"max=100"`                // Last name
	RoleID    uint   `validate:"omitempty,oneof=1 2 3"`  // Role identifier, defaults to User
	Password  string `validate:"required"`               // Plaintext password
}
