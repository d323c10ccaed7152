package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"car_rental/internal/domain" // Domain errors
)

// statusFromError maps domain errors to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFromError returns a client-safe message for err
func messageFromError(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrDuplicateKey):
		return "Email already in use"
	case errors.Is(err, domain.ErrConflict):
		return "Profile was modified concurrently, reload and retry"
	case errors.Is(err, domain.ErrInvalidRole):
		return "Unknown role"
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	default:
		return "Internal server error"
	}
}
