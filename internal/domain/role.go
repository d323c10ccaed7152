package domain

import "fmt"

// RoleName is one of the fixed authorization tiers
type RoleName string

const (
	RoleUser    RoleName = "User"    // Regular customer
	RoleManager RoleName = "Manager" // Fleet manager
	RoleAdmin   RoleName = "Admin"   // Administrator
)

// Stable role identifiers, matching the seeded roles table
const (
	RoleUserID    uint = 1
	RoleManagerID uint = 2
	RoleAdminID   uint = 3
)

// Role Model (read-only reference data)
type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false"` // Stable numeric identifier
	Name string `gorm:"size:32;uniqueIndex;not null"`   // Display name
}

var roleIDs = map[RoleName]uint{
	RoleUser:    RoleUserID,
	RoleManager: RoleManagerID,
	RoleAdmin:   RoleAdminID,
}

// ParseRole maps a role name to its identifier
func ParseRole(name string) (uint, error) {
	id, ok := roleIDs[RoleName(name)]
	if !ok {
		return 0, fmt.Errorf("role %q: %w", name, ErrInvalidRole)
	}
	return id, nil
}

// SeedRoles returns the reference rows the roles table must contain
func SeedRoles() []Role {
	return []Role{
		{ID: RoleUserID, Name: string(RoleUser)},
		{ID: RoleManagerID, Name: string(RoleManager)},
		{ID: RoleAdminID, Name: string(RoleAdmin)},
	}
}
