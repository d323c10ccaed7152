package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"car_rental/internal/service" // Principal claims

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Issuer name stamped into every session token
const tokenIssuer = "car_rental"

// SessionClaims carries the authenticated principal inside a JWT
type SessionClaims struct {
	UserID               uint   `json:"user_id"` // Subject ID
	Email                string `json:"email"`   // User email
	Role                 string `json:"role"`    // Role display name
	jwt.RegisteredClaims        // Standard JWT claims
}

// Principal returns the identity facts held by the token
func (c *SessionClaims) Principal() service.PrincipalClaims {
	return service.PrincipalClaims{SubjectID: c.UserID, Email: c.Email, Role: c.Role}
}

// GenerateJWT creates a signed session token for a principal
func GenerateJWT(p service.PrincipalClaims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := SessionClaims{
		UserID: p.SubjectID, // Subject ID
		Email:  p.Email,     // User email
		Role:   p.Role,      // Role display name
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,                      // Token issuer
			Subject:   p.Email,                          // Subject
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token string
func ParseJWT(tokenStr, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg swaps
		jwt.WithIssuer(tokenIssuer),                                  // Only our own tokens
	)
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, errors.Join(jwt.ErrTokenInvalidClaims, jwt.ErrSignatureInvalid)
}
