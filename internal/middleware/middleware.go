package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/grooviti/internal/helpers"
	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// ClaimsKey is the gin context key holding *helpers.Claims.
const ClaimsKey = "user"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details
			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("Internal server error"))
			}
		}
	}
}

// Metrics counts requests per route template and status.
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grooviti",
		Subsystem: "devserver",
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the dev backend.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(requests)

	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthMiddleware requires "Authorization: Bearer <token>" signed by tokens.
func AuthMiddleware(tokens *helpers.TokenIssuer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			requestID, _ := c.Get("request_id")
			logger.Info("Rejected bearer token", "request_id", requestID, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Session expired, please log in again"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*helpers.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	return claims, ok
}
