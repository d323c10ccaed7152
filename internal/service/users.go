package service

import (
	"context" // Context for store calls
	"errors"  // Sentinel checks
	"fmt"     // Error wrapping

	"car_rental/internal/domain" // Domain models and errors

	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/sirupsen/logrus"             // Structured logging
)

// UserAccessService owns user-centric reads and writes and their translation into views
type UserAccessService struct {
	store    Store
	hasher   PasswordHasher
	mapper   Mapper
	validate *validator.Validate
	log      logrus.FieldLogger
	dummy    string // Digest verified for unknown emails so both branches cost a hash
}

// MaxPasswordBytes is the longest password bcrypt accepts, counted in bytes
const MaxPasswordBytes = 72

// NewUserAccessService wires the service to its collaborators. A nil mapper falls back
// to FieldMapper and a nil logger to the logrus standard logger.
func NewUserAccessService(store Store, hasher PasswordHasher, mapper Mapper, log logrus.FieldLogger) *UserAccessService {
	if mapper == nil {
		mapper = FieldMapper{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &UserAccessService{
		store:    store,
		hasher:   hasher,
		mapper:   mapper,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
	if dummy, err := hasher.Hash("car_rental-unknown-user"); err == nil {
		s.dummy = dummy
	} else {
		log.WithError(err).Warn("Could not prepare dummy digest")
	}
	return s
}

func checkPasswordLength(password string) error {
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password longer than %d bytes", domain.ErrValidation, MaxPasswordBytes)
	}
	return nil
}

// EmailInUse reports whether a user with the given email exists
func (s *UserAccessService) EmailInUse(ctx context.Context, email string) (bool, error) {
	_, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("email in use: %w", err)
	}
	return true, nil
}

// BuildAuthenticatedPrincipal returns the claims for the user behind email.
// The password is not checked here; CredentialsInvalid must gate the call.
func (s *UserAccessService) BuildAuthenticatedPrincipal(ctx context.Context, email, _ string) (PrincipalClaims, error) {
	user, err := s.store.FindUserWithRoleByEmail(ctx, email)
	if err != nil {
		return PrincipalClaims{}, fmt.Errorf("build principal for %s: %w", email, err)
	}
	return PrincipalClaims{
		SubjectID: user.ID,
		Email:     user.Email,
		Role:      user.Role.Name,
	}, nil
}

// CredentialsInvalid is true when no user has the email or the password does not
// verify against the stored digest. Store failures are reported as invalid plus the error.
func (s *UserAccessService) CredentialsInvalid(ctx context.Context, email, password string) (bool, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		s.hasher.Verify(s.dummy, password) // Same bcrypt cost as a known email
		s.log.WithField("email", email).Info("Login for unknown email")
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("check credentials: %w", err)
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.log.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("Password verification failed")
		return true, nil
	}
	return false, nil
}

// CurrentRole returns the role name stored for the user behind email
func (s *UserAccessService) CurrentRole(ctx context.Context, email string) (string, error) {
	user, err := s.store.FindUserWithRoleByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("current role of %s: %w", email, err)
	}
	return user.Role.Name, nil
}

// HasUsers reports whether at least one user is stored
func (s *UserAccessService) HasUsers(ctx context.Context) (bool, error) {
	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// ListAllUsers returns every user with its active rental count.
// An empty store yields an empty, non-nil slice.
func (s *UserAccessService) ListAllUsers(ctx context.Context) ([]UserProfileView, error) {
	users, err := s.store.ListUsersWithRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	views := make([]UserProfileView, 0, len(users))
	for _, u := range users {
		view := s.mapper.UserToView(u)
		view.NumberRentedCars, err = s.store.CountActiveRentals(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("count rentals of user %d: %w", u.ID, err)
		}
		views = append(views, view)
	}
	return views, nil
}

// GetUserProfile returns the profile of the user behind email together with the cars
// that user currently rents
func (s *UserAccessService) GetUserProfile(ctx context.Context, email string) (UserProfileView, error) {
	user, err := s.store.FindUserWithRoleByEmail(ctx, email)
	if err != nil {
		return UserProfileView{}, fmt.Errorf("get profile of %s: %w", email, err)
	}
	view := s.mapper.UserToView(user)
	view.NumberRentedCars, err = s.store.CountActiveRentals(ctx, user.ID)
	if err != nil {
		return UserProfileView{}, fmt.Errorf("count rentals of user %d: %w", user.ID, err)
	}
	cars, err := s.store.ListActiveRentedCars(ctx, user.ID)
	if err != nil {
		return UserProfileView{}, fmt.Errorf("list rented cars of user %d: %w", user.ID, err)
	}
	view.Cars = make([]CarView, 0, len(cars))
	for _, c := range cars {
		view.Cars = append(view.Cars, s.mapper.CarToView(c))
	}
	return view, nil
}

// RegisterUser hashes the password and persists a new user.
// A taken email yields domain.ErrDuplicateKey.
func (s *UserAccessService) RegisterUser(ctx context.Context, req NewUserRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("register user: %w: %v", domain.ErrValidation, err)
	}
	if err := checkPasswordLength(req.Password); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	roleID := req.RoleID
	if roleID == 0 {
		roleID = domain.RoleUserID // Default role
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       roleID,
		PasswordHash: hash,
		Version:      1,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return fmt.Errorf("register user %s: %w", req.Email, err)
	}
	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"role_id": user.RoleID,
	}).Info("User registered")
	return nil
}

// SaveEditedProfile overwrites the profile fields of the user behind view.Email.
// An empty Role leaves the role as is; an unknown one aborts with domain.ErrInvalidRole.
// The password is replaced only when both new-password fields are present.
func (s *UserAccessService) SaveEditedProfile(ctx context.Context, view UserProfileView) error {
	user, err := s.store.FindUserByEmail(ctx, view.Email)
	if err != nil {
		return fmt.Errorf("save profile of %s: %w", view.Email, err)
	}
	version := user.Version

	user.FirstName = view.FirstName
	user.LastName = view.LastName
	user.ContactNumber = view.ContactNumber
	user.PostalCode = view.PostalCode
	user.City = view.City
	user.Street = view.Street

	if view.Role != "" {
		roleID, err := domain.ParseRole(view.Role)
		if err != nil {
			return fmt.Errorf("save profile of %s: %w", view.Email, err)
		}
		user.RoleID = roleID
	}

	// TODO: compare NewPassword with ConfirmNewPassword once product decides whether a mismatch is an error.
	if view.NewPassword != nil && view.ConfirmNewPassword != nil {
		if err := checkPasswordLength(*view.NewPassword); err != nil {
			return fmt.Errorf("save profile of %s: %w", view.Email, err)
		}
		hash, err := s.hasher.Hash(*view.NewPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.store.UpdateUser(ctx, &user, version); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Error("Profile update failed")
		return fmt.Errorf("save profile of %s: %w", view.Email, err)
	}
	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role_id": user.RoleID,
	}).Info("Profile updated")
	return nil
}
