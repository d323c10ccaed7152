package db

import (
	"testing"

	"car_rental/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), Config())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one connection keeps the in-memory database alive
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestMigrate_SeedsRolesIdempotently(t *testing.T) {
	gdb := openSQLite(t)

	require.NoError(t, Migrate(gdb))
	require.NoError(t, Migrate(gdb), "second run must not fail on existing roles")

	var roles []domain.Role
	require.NoError(t, gdb.Order("id").Find(&roles).Error)
	require.Equal(t, domain.SeedRoles(), roles)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	gdb := openSQLite(t)
	require.NoError(t, Migrate(gdb))

	for _, model := range []any{&domain.Role{}, &domain.User{}, &domain.Car{}, &domain.RentalRecord{}} {
		require.True(t, gdb.Migrator().HasTable(model), "%T", model)
	}
}
