package api

import (
	"errors"   // Sentinel checks
	"net/http" // HTTP status codes

	"car_rental/internal/domain"     // Role names
	"car_rental/internal/middleware" // Principal lookup
	"car_rental/internal/service"    // View models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// EmailAvailabilityHandler reports whether an email is already registered
func EmailAvailabilityHandler(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := normalizeEmail(c.Query("email"))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
			return
		}
		inUse, err := users.EmailInUse(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": email, "in_use": inUse})
	}
}

// GetProfileHandler returns the caller's profile with the cars currently rented
func GetProfileHandler(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		profile, err := users.GetUserProfile(c.Request.Context(), p.Email)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": messageFromError(err)})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfileHandler saves an edited profile. Only admins may edit other users or
// change a role.
func UpdateProfileHandler(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c) // Get principal from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var view service.UserProfileView // Bind JSON request to struct
		if err := c.ShouldBindJSON(&view); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		view.Email = normalizeEmail(view.Email)
		// Tokens outlive role changes, so the editor's rights come from the store
		editorRole, err := users.CurrentRole(c.Request.Context(), p.Email)
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		} else if err != nil {
			logrus.WithError(err).Error("Loading editor role failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if domain.RoleName(editorRole) != domain.RoleAdmin {
			if view.Email != p.Email {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot edit another user's profile"})
				return
			}
			if view.Role != "" && view.Role != editorRole {
				c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can change roles"})
				return
			}
		}
		if err := users.SaveEditedProfile(c.Request.Context(), view); err != nil {
			if statusFromError(err) == http.StatusInternalServerError {
				logrus.WithFields(logrus.Fields{
					"editor": p.Email,
					"email":  view.Email,
					"error":  err.Error(),
				}).Error("Profile save failed")
			}
			c.JSON(statusFromError(err), gin.H{"error": messageFromError(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
	}
}

// ListUsersHandler returns every user with the number of cars they currently rent
func ListUsersHandler(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := users.ListAllUsers(c.Request.Context())
		if err != nil {
			logrus.WithError(err).Error("Listing users failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users": views,      // List of users
			"total": len(views), // Total number of users
		})
	}
}
