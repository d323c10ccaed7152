package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"car_rental/internal/domain"
)

// Store keeps users, cars and rentals in process memory.
type Store struct {
	mu      sync.RWMutex
	roles   map[uint]domain.Role
	users   map[uint]domain.User
	byEmail map[string]uint
	cars    map[uint]domain.Car
	rentals []domain.RentalRecord
	nextID  uint
}

// NewStore returns an empty store seeded with the reference roles.
func NewStore() *Store {
	s := &Store{
		roles:   make(map[uint]domain.Role),
		users:   make(map[uint]domain.User),
		byEmail: make(map[string]uint),
		cars:    make(map[uint]domain.Car),
	}
	for _, r := range domain.SeedRoles() {
		s.roles[r.ID] = r
	}
	return s
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AddCar stores c and returns it with its ID set.
func (s *Store) AddCar(c domain.Car) domain.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.cars[c.ID] = c
	return c
}

// AddRental stores r and returns it with its ID set.
func (s *Store) AddRental(r domain.RentalRecord) domain.RentalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	s.rentals = append(s.rentals, r)
	return r
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	u := s.users[id]
	u.Role = domain.Role{}
	return u, nil
}

func (s *Store) FindUserWithRoleByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return s.withRole(s.users[id]), nil
}

func (s *Store) ListUsersWithRole(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, s.withRole(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Store) CountActiveRentals(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, r := range s.rentals {
		if r.UserID == userID && !r.IsGivenBack {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListActiveRentedCars(_ context.Context, userID uint) ([]domain.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Car
	for _, r := range s.rentals {
		if r.UserID == userID && !r.IsGivenBack {
			out = append(out, s.cars[r.CarID])
		}
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[u.Email]; taken {
		return domain.ErrDuplicateKey
	}
	now := time.Now()
	u.ID = s.id()
	if u.Version == 0 {
		u.Version = 1
	}
	u.CreatedAt, u.UpdatedAt = now, now
	stored := *u
	stored.Role = domain.Role{}
	s.users[u.ID] = stored
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *domain.User, expectedVersion uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	u.Version = expectedVersion + 1
	u.UpdatedAt = time.Now()
	stored := *u
	stored.Role = domain.Role{}
	s.users[u.ID] = stored
	return nil
}

func (s *Store) withRole(u domain.User) domain.User {
	u.Role = s.roles[u.RoleID]
	return u
}
