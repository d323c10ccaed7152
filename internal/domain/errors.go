package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")                        // Lookup by email or id yielded nothing
	ErrDuplicateKey = errors.New("duplicate key")                    // Unique constraint violated on insert
	ErrInvalidRole  = errors.New("invalid role")                     // Role name outside {User, Manager, Admin}
	ErrConflict     = errors.New("concurrent modification conflict") // Optimistic update lost the race
	ErrValidation   = errors.New("validation failed")                // Malformed input
)
