package repository

import (
	"context"
	"testing"
	"time"

	"car_rental/internal/db"
	"car_rental/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), db.Config())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return NewGormStore(gdb), gdb
}

func mustCreateUser(t *testing.T, s *GormStore, email string, roleID uint) domain.User {
	t.Helper()
	u := domain.User{Email: email, PasswordHash: "digest", FirstName: "Ann", RoleID: roleID}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	require.NotZero(t, u.ID)
	return u
}

func mustRent(t *testing.T, gdb *gorm.DB, userID uint, plate string, givenBack bool) domain.Car {
	t.Helper()
	car := domain.Car{Brand: "Skoda", Model: "Octavia", Year: 2021, RegistrationNumber: plate, PricePerDay: 40}
	require.NoError(t, gdb.Create(&car).Error)
	rental := domain.RentalRecord{
		UserID:      userID,
		CarID:       car.ID,
		RentedFrom:  time.Now().Add(-48 * time.Hour),
		RentedTo:    time.Now().Add(48 * time.Hour),
		IsGivenBack: givenBack,
	}
	require.NoError(t, gdb.Omit("Car").Create(&rental).Error)
	return car
}

func TestGormStore_FindUserByEmail(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.FindUserByEmail(ctx, "a@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)

	created := mustCreateUser(t, s, "a@x.com", domain.RoleManagerID)

	got, err := s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, uint(1), got.Version)

	withRole, err := s.FindUserWithRoleByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Manager", withRole.Role.Name)
}

func TestGormStore_CreateUser_DuplicateEmail(t *testing.T) {
	s, _ := setupStore(t)
	mustCreateUser(t, s, "a@x.com", domain.RoleUserID)

	dup := domain.User{Email: "a@x.com", PasswordHash: "other", RoleID: domain.RoleUserID}
	err := s.CreateUser(context.Background(), &dup)
	require.ErrorIs(t, err, domain.ErrDuplicateKey)

	n, err := s.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormStore_ListUsersWithRole(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	users, err := s.ListUsersWithRole(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	mustCreateUser(t, s, "a@x.com", domain.RoleUserID)
	mustCreateUser(t, s, "b@x.com", domain.RoleAdminID)

	users, err = s.ListUsersWithRole(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "User", users[0].Role.Name)
	assert.Equal(t, "Admin", users[1].Role.Name)
}

func TestGormStore_ActiveRentals(t *testing.T) {
	s, gdb := setupStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "a@x.com", domain.RoleUserID)
	other := mustCreateUser(t, s, "b@x.com", domain.RoleUserID)

	mustRent(t, gdb, u.ID, "C1", true)
	c2 := mustRent(t, gdb, u.ID, "C2", false)
	mustRent(t, gdb, other.ID, "C3", false)

	n, err := s.CountActiveRentals(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cars, err := s.ListActiveRentedCars(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, c2.ID, cars[0].ID)
	assert.Equal(t, "C2", cars[0].RegistrationNumber)
}

func TestGormStore_UpdateUser_VersionGuard(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "a@x.com", domain.RoleUserID)

	first := u
	first.City = "Gdansk"
	first.RoleID = domain.RoleManagerID
	require.NoError(t, s.UpdateUser(ctx, &first, 1))
	assert.Equal(t, uint(2), first.Version)

	stale := u
	stale.City = "Krakow"
	err := s.UpdateUser(ctx, &stale, 1)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := s.FindUserWithRoleByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Gdansk", got.City)
	assert.Equal(t, "Manager", got.Role.Name)
	assert.Equal(t, uint(2), got.Version)
}

func TestGormStore_UpdateUser_MissingRow(t *testing.T) {
	s, _ := setupStore(t)
	ghost := domain.User{ID: 42}
	err := s.UpdateUser(context.Background(), &ghost, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
