package razorpayapi

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"timestamper-api/config"
	"timestamper-api/database"
	"timestamper-api/internal/domain/payments"
	"timestamper-api/internal/domain/plans"
	"timestamper-api/internal/domain/subscriptions"
	"timestamper-api/internal/infra/cache"
	"timestamper-api/internal/infra/razorpay"

	"github.com/gin-gonic/gin"
)

// Gateway is the Razorpay client, constructed once at startup. Tests swap it
// for one pointed at a fake gateway.
var Gateway *razorpay.Client

// CreateOrder opens a gateway order and records the payment intent linking
// it to the user and the plan it is meant to activate.
func CreateOrder(c *gin.Context) {
	var body struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Plan     string `json:"plan"`
		UserID   string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == "" || body.Plan == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and plan are required"})
		return
	}

	if !plans.IsKnown(body.Plan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = "INR"
	}

	receipt := fmt.Sprintf("order_rcptid_%d", time.Now().UnixMilli())
	order, err := Gateway.CreateOrder(body.Amount, currency, receipt)
	if err != nil {
		log.Printf("create-order error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	intent := payments.PaymentIntent{
		RazorpayOrderID: order.ID,
		UserID:          body.UserID,
		Plan:            body.Plan,
		Status:          payments.StatusCreated,
		AmountPaise:     order.Amount,
		Currency:        order.Currency,
	}
	if err := database.DB.Create(&intent).Error; err != nil {
		log.Printf("create-order intent insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":  order.ID,
		"key":      config.RAZORPAY_KEY_ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// VerifyPayment is the synchronous companion to the webhook: the browser
// posts the checkout callback here for immediate feedback. Both paths can
// fire for the same order; the subscription upsert makes that harmless.
func VerifyPayment(c *gin.Context) {
	var body struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OrderID == "" || body.PaymentID == "" || body.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if !razorpay.VerifyPaymentSignature(body.OrderID, body.PaymentID, body.Signature, config.RAZORPAY_KEY_SECRET) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	var intent payments.PaymentIntent
	err := database.DB.
		Where("razorpay_order_id = ? AND status <> ?", body.OrderID, payments.StatusExpired).
		First(&intent).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Intent not found"})
		return
	}

	if err := subscriptions.Activate(database.DB, intent.UserID, intent.Plan); err != nil {
		log.Printf("verify-payment activate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	if err := database.DB.Model(&payments.PaymentIntent{}).
		Where("razorpay_order_id = ?", body.OrderID).
		Updates(map[string]interface{}{
			"status":              payments.StatusSuccess,
			"razorpay_payment_id": body.PaymentID,
		}).Error; err != nil {
		log.Printf("verify-payment intent update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	cache.InvalidateSummary(c.Request.Context(), intent.UserID)

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"plan":    intent.Plan,
		"message": fmt.Sprintf("Successfully upgraded to %s!", intent.Plan),
	})
}
