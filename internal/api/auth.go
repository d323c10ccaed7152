package api

import (
	"context"  // Context for service calls
	"net/http" // HTTP status codes
	"strconv"  // Retry-After header
	"strings"  // String manipulation
	"time"     // Durations

	"car_rental/internal/observability" // Metrics
	"car_rental/internal/service"       // User access service
	"car_rental/internal/utils"         // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Users is the part of the user access service the handlers call
type Users interface {
	EmailInUse(ctx context.Context, email string) (bool, error)
	BuildAuthenticatedPrincipal(ctx context.Context, email, password string) (service.PrincipalClaims, error)
	CredentialsInvalid(ctx context.Context, email, password string) (bool, error)
	ListAllUsers(ctx context.Context) ([]service.UserProfileView, error)
	GetUserProfile(ctx context.Context, email string) (service.UserProfileView, error)
	RegisterUser(ctx context.Context, req service.NewUserRequest) error
	SaveEditedProfile(ctx context.Context, view service.UserProfileView) error
	CurrentRole(ctx context.Context, email string) (string, error)
}

// LoginLimiter throttles repeated failed logins
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// SessionConfig controls how session tokens are issued
type SessionConfig struct {
	Secret     string        // JWT signing secret
	TTL        time.Duration // Token and cookie lifetime
	CookieName string        // Session cookie name
	Secure     bool          // Send the cookie over HTTPS only
}

// Request struct for registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=191"`   // Email must be provided
	FirstName string `json:"first_name" binding:"max=100"`             // Optional first name
	LastName  string `json:"last_name" binding:"max=100"`              // Optional last name
	Password  string `json:"password" binding:"required,min=6,max=72"` // Byte limit enforced by the service
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string                  `json:"token"` // JWT token
	User  service.PrincipalClaims `json:"user"`  // Authenticated principal
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterHandler creates a user account with the default User role
func RegisterHandler(users Users, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			countRegistration(m, "invalid")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		err := users.RegisterUser(c.Request.Context(), service.NewUserRequest{
			Email:     normalizeEmail(req.Email), // Lowercase email to keep the key unique
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Password:  req.Password,
		})
		if err != nil {
			status := statusFromError(err)
			switch status {
			case http.StatusConflict:
				countRegistration(m, "duplicate")
			case http.StatusBadRequest:
				countRegistration(m, "invalid")
			default:
				countRegistration(m, "error")
				logrus.WithFields(logrus.Fields{
					"email": req.Email,
					"error": err.Error(),
				}).Error("Registration failed")
			}
			c.JSON(status, gin.H{"error": messageFromError(err)})
			return
		}
		countRegistration(m, "created")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler verifies credentials, then issues a session cookie and token
func LoginHandler(users Users, limiter LoginLimiter, session SessionConfig, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		email := normalizeEmail(req.Email)

		if limiter != nil {
			blocked, retry, err := limiter.Blocked(ctx, email)
			if err != nil {
				// Throttle store down: log and let the login proceed
				logrus.WithError(err).Warn("Login throttle unavailable")
			} else if blocked {
				countLogin(m, "throttled")
				c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed logins, try again later"})
				return
			}
		}

		invalid, err := users.CredentialsInvalid(ctx, email, req.Password)
		if err != nil {
			countLogin(m, "error")
			logrus.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Error("Credential check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if invalid {
			countLogin(m, "invalid")
			if limiter != nil {
				if err := limiter.RecordFailure(ctx, email); err != nil {
					logrus.WithError(err).Warn("Failed to record login failure")
				}
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		principal, err := users.BuildAuthenticatedPrincipal(ctx, email, req.Password)
		if err != nil {
			countLogin(m, "error")
			c.JSON(statusFromError(err), gin.H{"error": messageFromError(err)})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(principal, session.Secret, session.TTL)
		if err != nil {
			// If token generation fails, return internal server error
			countLogin(m, "error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		if limiter != nil {
			// Successful login clears failures
			if err := limiter.Reset(ctx, email); err != nil {
				logrus.WithError(err).Warn("Failed to reset login failures")
			}
		}
		countLogin(m, "success")
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, token, int(session.TTL.Seconds()), "/", "", session.Secure, true)
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: principal})
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler(session SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, "", -1, "/", "", session.Secure, true)
		c.Status(http.StatusNoContent)
	}
}

func countLogin(m *observability.Metrics, result string) {
	if m != nil {
		m.LoginAttempts.WithLabelValues(result).Inc()
	}
}

func countRegistration(m *observability.Metrics, result string) {
	if m != nil {
		m.Registrations.WithLabelValues(result).Inc()
	}
}
