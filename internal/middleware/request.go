package middleware

import (
	"strconv" // Status label
	"time"    // Latency

	"car_rental/internal/observability" // Metrics

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Structured logging
)

const requestIDHeader = "X-Request-Id"

// Context key under which the request ID is stored
const RequestIDKey = "request_id"

// RequestID propagates the caller's request ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(RequestIDKey, id)
		c.Next()
	}
}

// RequestLogger logs every request and records it in metrics when m is not nil
func RequestLogger(log logrus.FieldLogger, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched" // Keep label cardinality bounded on 404s
		}
		status := c.Writer.Status()
		lat := time.Since(start)

		log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"latency_ms": lat.Milliseconds(),
			"request_id": c.GetString(RequestIDKey),
		}).Info("http_request")

		if m != nil {
			m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
			m.RequestsDuration.WithLabelValues(c.Request.Method, route).Observe(lat.Seconds())
		}
	}
}
