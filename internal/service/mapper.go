package service

import "car_rental/internal/domain"

// FieldMapper copies entity fields onto view models one by one.
type FieldMapper struct{}

func (FieldMapper) UserToView(u domain.User) UserProfileView {
	return UserProfileView{
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		ContactNumber: u.ContactNumber,
		Street:        u.Street,
		City:          u.City,
		PostalCode:    u.PostalCode,
		Role:          u.Role.Name,
	}
}

func (FieldMapper) CarToView(c domain.Car) CarView {
	return CarView{
		ID:                 c.ID,
		Brand:              c.Brand,
		Model:              c.Model,
		Year:               c.Year,
		RegistrationNumber: c.RegistrationNumber,
		PricePerDay:        c.PricePerDay,
	}
}
