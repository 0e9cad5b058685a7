package razorpaywebhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"timestamper-api/config"
	"timestamper-api/database"
	"timestamper-api/internal/domain/payments"
	"timestamper-api/internal/domain/subscriptions"
	"timestamper-api/internal/infra/cache"
	"timestamper-api/internal/infra/razorpay"

	"github.com/gin-gonic/gin"
)

const eventPaymentCaptured = "payment.captured"

// Webhook consumes gateway notifications. Anything non-fatal answers 200 so
// the gateway stops retrying; only retryable infrastructure failures get 500.
func Webhook(c *gin.Context) {
	payload, err := readBody(c, 65536)
	if err != nil {
		c.String(http.StatusServiceUnavailable, "Error reading request body")
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !razorpay.VerifyWebhookSignature(payload, signature, config.RAZORPAY_WEBHOOK_SECRET) {
		log.Println("Invalid webhook signature")
		c.String(http.StatusBadRequest, "Invalid signature")
		return
	}

	var event razorpay.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.String(http.StatusBadRequest, "Malformed payload")
		return
	}

	if event.Event != eventPaymentCaptured {
		c.String(http.StatusOK, "Ignored")
		return
	}

	// Redelivery short-circuit. The id is marked only after the writes below
	// land, so a delivery that failed with 500 is still retryable.
	eventID := c.GetHeader("X-Razorpay-Event-Id")
	if cache.EventSeen(c.Request.Context(), eventID) {
		c.String(http.StatusOK, "OK")
		return
	}

	paymentEntity := event.Payload.Payment.Entity
	orderID := paymentEntity.OrderID

	var intent payments.PaymentIntent
	err = database.DB.
		Where("razorpay_order_id = ? AND status <> ?", orderID, payments.StatusExpired).
		First(&intent).Error
	if err != nil {
		log.Printf("payment_intents lookup error: %v", err)
		c.String(http.StatusBadRequest, "Intent not found")
		return
	}

	if err := subscriptions.Activate(database.DB, intent.UserID, intent.Plan); err != nil {
		log.Printf("webhook activate error: %v", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	if err := database.DB.Model(&payments.PaymentIntent{}).
		Where("razorpay_order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":              payments.StatusSuccess,
			"razorpay_payment_id": paymentEntity.ID,
		}).Error; err != nil {
		log.Printf("webhook intent update error: %v", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	cache.MarkEventSeen(c.Request.Context(), eventID)
	cache.InvalidateSummary(c.Request.Context(), intent.UserID)

	c.String(http.StatusOK, "OK")
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
