package api

import (
	"net/http" // Handler adapter

	"car_rental/internal/domain"        // Role names
	"car_rental/internal/middleware"    // Custom middleware
	"car_rental/internal/observability" // Metrics

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RouterDeps carries everything the routes need
type RouterDeps struct {
	Users          Users                  // User access service
	Limiter        LoginLimiter           // Optional failed-login throttle
	Session        SessionConfig          // Session token settings
	Metrics        *observability.Metrics // Optional metrics
	MetricsHandler http.Handler           // Optional /metrics handler
	Log            logrus.FieldLogger     // Request logger
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(d RouterDeps) *gin.Engine {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.Log, d.Metrics))

	// Auth routes
	r.POST("/user", RegisterHandler(d.Users, d.Metrics))                           // Registration endpoint
	r.GET("/user/exists", EmailAvailabilityHandler(d.Users))                       // Email availability endpoint
	r.POST("/user/login", LoginHandler(d.Users, d.Limiter, d.Session, d.Metrics)) // Login endpoint
	r.POST("/user/logout", LogoutHandler(d.Session))                               // Logout endpoint

	// Profile routes (protected by JWT)
	profile := r.Group("/user/profile")
	profile.Use(middleware.JWTAuthMiddleware(d.Session.Secret, d.Session.CookieName))
	profile.GET("", GetProfileHandler(d.Users))    // Own profile
	profile.PUT("", UpdateProfileHandler(d.Users)) // Edit profile

	// Admin routes (protected, managers and admins only)
	admin := r.Group("/admin")
	admin.Use(
		middleware.JWTAuthMiddleware(d.Session.Secret, d.Session.CookieName),
		middleware.RequireRole(domain.RoleAdmin, domain.RoleManager),
	)
	admin.GET("/users", ListUsersHandler(d.Users)) // List users endpoint

	if d.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(d.MetricsHandler)) // Prometheus scrape endpoint
	}
	return r
}
