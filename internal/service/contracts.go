package service

import (
	"context"

	"car_rental/internal/domain"
)

// Store is the persistence surface the user access service needs.
// Lookups that match nothing return domain.ErrNotFound.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	FindUserWithRoleByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsersWithRole(ctx context.Context) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountActiveRentals(ctx context.Context, userID uint) (int64, error)
	ListActiveRentedCars(ctx context.Context, userID uint) ([]domain.Car, error)

	// CreateUser inserts u and fills its ID. A taken email yields domain.ErrDuplicateKey.
	CreateUser(ctx context.Context, u *domain.User) error
	// UpdateUser writes u only if the stored row still carries expectedVersion,
	// otherwise it yields domain.ErrConflict. On success u.Version is bumped.
	UpdateUser(ctx context.Context, u *domain.User, expectedVersion uint) error
}

// PasswordHasher turns plaintext passwords into digests and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
}

// Mapper converts storage entities into view models.
type Mapper interface {
	UserToView(u domain.User) UserProfileView
	CarToView(c domain.Car) CarView
}
