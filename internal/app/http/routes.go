package routes

import (
	"net/http"

	authapi "timestamper-api/internal/api/auth"
	exportsapi "timestamper-api/internal/api/exports"
	plansapi "timestamper-api/internal/api/plans"
	"timestamper-api/internal/api/razorpayapi"
	"timestamper-api/internal/api/razorpaywebhook"
	subscriptionsapi "timestamper-api/internal/api/subscriptions"
	usersapi "timestamper-api/internal/api/users"
	"timestamper-api/config"
	"timestamper-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook reads the raw body for signature verification, so it stays
	// outside every body-rewriting middleware.
	r.POST("/api/razorpay/webhook", razorpaywebhook.Webhook)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "port": config.PORT})
	})

	r.GET("/api/plans", plansapi.ListPlans)
	r.GET("/api/subscription/:userId", subscriptionsapi.GetSubscription)

	// Legacy-shaped endpoints the frontend calls without a session.
	r.POST("/api/export", exportsapi.Export)
	r.POST("/api/razorpay/create-order", razorpayapi.CreateOrder)
	r.POST("/api/razorpay/verify-payment", razorpayapi.VerifyPayment)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/api/auth/signup", authapi.Signup)
	public.POST("/api/auth/signin", authapi.Signin)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/api/auth/me", authapi.Me)
	auth.POST("/api/auth/signout", authapi.Signout)
	auth.PUT("/api/users/me", usersapi.UpdateProfile)
	auth.POST("/api/export/render", exportsapi.Render)
}
