package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/metrics"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDKey = "request_id"
	serviceKey   = "service"
)

// Authorizer resolves the calling service, see guard.Guard.
type Authorizer interface {
	Authorize(ctx context.Context, token, ip string) (*models.Service, error)
}

// RequestIDMiddleware adds a unique request ID to each request.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs one entry per request once the handler chain is done.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}
		if svc := CurrentService(c); svc != nil {
			fields["service"] = svc.Slug
		}
		entry := logrus.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// Authenticate validates the Bearer API key and stores the service on the
// context. Requests are rejected before any handler runs.
func Authenticate(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, err := auth.Authorize(c.Request.Context(), bearerToken(c.GetHeader("Authorization")), c.ClientIP())
		if svc != nil {
			c.Set(serviceKey, svc)
		}
		if err != nil {
			if errors.Is(err, models.ErrRateLimited) {
				metrics.RateLimited.Inc()
			}
			respondError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentService returns the service set by Authenticate, nil if none.
func CurrentService(c *gin.Context) *models.Service {
	v, ok := c.Get(serviceKey)
	if !ok {
		return nil
	}
	svc, _ := v.(*models.Service)
	return svc
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
