package memory

import (
	"context"
	"sync"
	"testing"

	"car_rental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateUserRejectsDuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &domain.User{Email: "a@x.com", RoleID: domain.RoleUserID}))
	err := s.CreateUser(ctx, &domain.User{Email: "a@x.com", RoleID: domain.RoleUserID})
	require.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestStore_ConcurrentRegistrationKeepsEmailUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.CreateUser(ctx, &domain.User{Email: "race@x.com", RoleID: domain.RoleUserID})
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrDuplicateKey)
	}
	assert.Equal(t, 1, ok)
}

func TestStore_UpdateUserVersionGuard(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := domain.User{Email: "a@x.com", RoleID: domain.RoleUserID}
	require.NoError(t, s.CreateUser(ctx, &u))

	edit := u
	edit.City = "Oslo"
	require.NoError(t, s.UpdateUser(ctx, &edit, 1))
	assert.Equal(t, uint(2), edit.Version)

	require.ErrorIs(t, s.UpdateUser(ctx, &u, 1), domain.ErrConflict)

	ghost := domain.User{ID: 999}
	require.ErrorIs(t, s.UpdateUser(ctx, &ghost, 1), domain.ErrNotFound)
}

func TestStore_RoleIsJoinedOnlyWhenAsked(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &domain.User{Email: "a@x.com", RoleID: domain.RoleAdminID}))

	plain, err := s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, plain.Role.Name)

	joined, err := s.FindUserWithRoleByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin", joined.Role.Name)
}
