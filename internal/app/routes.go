package app

import (
	"net/http"

	handlers "github.com/acoruss/acoruss.github.io/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) RegisterRoutes(h *handlers.PaymentHandler, auth handlers.Authorizer) {
	a.Router.GET("/health", a.health)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := a.Router.Group("/api/v1")
	v1.POST("/webhooks/paystack", h.PaystackWebhook)
	v1.GET("/payments/callback/", h.VerifyCallback)

	payments := v1.Group("/payments", handlers.Authenticate(auth))
	payments.POST("/initiate/", h.Initiate)
	payments.GET("/", h.List)
	payments.GET("/:reference/", h.Get)
	payments.POST("/:reference/refund/", h.Refund)
}

func (a *App) health(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
