package repository

import (
	"context" // Context for queries
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"time"    // Update timestamps

	"car_rental/internal/domain" // Domain models and errors

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"gorm.io/gorm"                   // GORM ORM library
)

// MySQL error number for a unique key violation
const mysqlDuplicateEntry = 1062

// GormStore persists users and reads rentals through GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindUserByEmail loads a user without its role
func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, lookupErr(err)
}

// FindUserWithRoleByEmail loads a user and preloads its role
func (s *GormStore) FindUserWithRoleByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	return user, lookupErr(err)
}

// ListUsersWithRole loads every user with its role, ordered by ID
func (s *GormStore) ListUsersWithRole(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Preload("Role").Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("gormStore.ListUsersWithRole: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of stored users
func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("gormStore.CountUsers: %w", err)
	}
	return total, nil
}

// CountActiveRentals counts the rentals of a user that are not given back
func (s *GormStore) CountActiveRentals(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.RentalRecord{}).
		Where("user_id = ? AND is_given_back = ?", userID, false).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("gormStore.CountActiveRentals: %w", err)
	}
	return total, nil
}

// ListActiveRentedCars returns the cars a user currently rents
func (s *GormStore) ListActiveRentedCars(ctx context.Context, userID uint) ([]domain.Car, error) {
	var rentals []domain.RentalRecord
	err := s.db.WithContext(ctx).Preload("Car").
		Where("user_id = ? AND is_given_back = ?", userID, false).
		Order("id").
		Find(&rentals).Error
	if err != nil {
		return nil, fmt.Errorf("gormStore.ListActiveRentedCars: %w", err)
	}
	cars := make([]domain.Car, len(rentals))
	for i, r := range rentals {
		cars[i] = r.Car
	}
	return cars, nil
}

// CreateUser inserts a user; the unique email index turns races into ErrDuplicateKey
func (s *GormStore) CreateUser(ctx context.Context, u *domain.User) error {
	if u.Version == 0 {
		u.Version = 1
	}
	// Omit associations so the seeded role row is never upserted
	err := s.db.WithContext(ctx).Omit("Role").Create(u).Error
	if isDuplicate(err) {
		return fmt.Errorf("email %s: %w", u.Email, domain.ErrDuplicateKey)
	}
	if err != nil {
		return fmt.Errorf("gormStore.CreateUser: %w", err)
	}
	return nil
}

// UpdateUser writes the mutable columns in one statement guarded by the row version
func (s *GormStore) UpdateUser(ctx context.Context, u *domain.User, expectedVersion uint) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND version = ?", u.ID, expectedVersion).
		Updates(map[string]any{
			"first_name":     u.FirstName,
			"last_name":      u.LastName,
			"contact_number": u.ContactNumber,
			"street":         u.Street,
			"city":           u.City,
			"postal_code":    u.PostalCode,
			"role_id":        u.RoleID,
			"password_hash":  u.PasswordHash,
			"version":        expectedVersion + 1,
			"updated_at":     now,
		})
	if res.Error != nil {
		return fmt.Errorf("gormStore.UpdateUser: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or someone else bumped the version first
		var n int64
		if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Count(&n).Error; err != nil {
			return fmt.Errorf("gormStore.UpdateUser: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	u.Version = expectedVersion + 1
	u.UpdatedAt = now
	return nil
}

func lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
