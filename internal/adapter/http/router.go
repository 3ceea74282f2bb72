package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/adapter/http/middleware"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
)

func NewRouter(oh *OrderHandler, ph *PaymentHandler, wh *WebhookHandler, ah *AdminHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	// the gateway expects 405 (not 404) when it probes the webhook with
	// the wrong method
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/v1/token/request", th.RequestOTP)
	r.POST("/v1/token/verify", th.VerifyOTP)

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", oh.CreateCheckout)
		v1.GET("/orders/:id", oh.GetOrderByID)
		v1.GET("/orders/:id/status", oh.GetOrderStatus)
		v1.POST("/orders/:id/pay", oh.Pay)

		v1.POST("/payments/notify", wh.Notify)
		v1.POST("/payments/manual", ph.Manual)

		admin := v1.Group("/admin", authz.Require("orders.admin"))
		{
			admin.GET("/orders", ah.ListOrders)
			admin.POST("/orders/status", ah.UpdateStatus)
		}
	}

	return r
}
