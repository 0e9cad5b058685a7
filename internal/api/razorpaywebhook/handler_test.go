package razorpaywebhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timestamper-api/config"
	"timestamper-api/database"
	"timestamper-api/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

func webhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/razorpay/webhook", Webhook)
	return r
}

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func capturedEvent(orderID, paymentID string) string {
	return fmt.Sprintf(`{"entity":"event","event":"payment.captured","payload":{"payment":{"entity":{"id":%q,"order_id":%q,"status":"captured","amount":1000,"currency":"INR"}}}}`, paymentID, orderID)
}

func deliver(router *gin.Engine, body string, signature string) *httptest.ResponseRecorder {
	return deliverEvent(router, body, signature, "")
}

func deliverEvent(router *gin.Engine, body, signature, eventID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	if eventID != "" {
		req.Header.Set("X-Razorpay-Event-Id", eventID)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func intentRows(orderID, userID, plan, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"razorpay_order_id", "user_id", "plan", "status", "amount_paise", "currency"}).
		AddRow(orderID, userID, plan, status, 1000, "INR")
}

func expectActivation(mock sqlmock.Sqlmock, orderID, userID, plan string) {
	mock.ExpectQuery(`SELECT \* FROM "payment_intents" WHERE razorpay_order_id =`).
		WillReturnRows(intentRows(orderID, userID, plan, "created"))
	mock.ExpectExec(`INSERT INTO "user_subscriptions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "payment_intents"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestWebhookInvalidSignature(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	body := capturedEvent("order_abc123", "pay_1")
	resp := deliver(webhookRouter(), body, "deadbeef")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid signature", resp.Body.String())
}

func TestWebhookMissingSignature(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	resp := deliver(webhookRouter(), capturedEvent("order_abc123", "pay_1"), "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid signature", resp.Body.String())
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	body := `{"entity":"event","event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_abc123"}}}}`
	resp := deliver(webhookRouter(), body, signBody(body))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Ignored", resp.Body.String())
}

func TestWebhookIntentNotFound(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	mock.ExpectQuery(`SELECT \* FROM "payment_intents" WHERE razorpay_order_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"razorpay_order_id"}))

	body := capturedEvent("order_unknown", "pay_1")
	resp := deliver(webhookRouter(), body, signBody(body))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Intent not found", resp.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookCapturedPaymentActivatesPlan(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	expectActivation(mock, "order_abc123", "u1", "Pro")

	body := capturedEvent("order_abc123", "pay_xyz789")
	resp := deliver(webhookRouter(), body, signBody(body))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "OK", resp.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookRedeliveryIsIdempotent(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	body := capturedEvent("order_abc123", "pay_xyz789")
	router := webhookRouter()

	// Two deliveries of the same event run the same upsert; the subscription
	// row lands in the same state either way.
	expectActivation(mock, "order_abc123", "u1", "Pro")
	expectActivation(mock, "order_abc123", "u1", "Pro")

	first := deliver(router, body, signBody(body))
	second := deliver(router, body, signBody(body))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "OK", second.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookRetryAfterFailureActivatesPlan(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	database.Redis = testutil.SetupStubRedis(t)
	defer func() { database.Redis = nil }()

	body := capturedEvent("order_abc123", "pay_xyz789")
	router := webhookRouter()

	// First delivery dies on the subscription upsert. The event id must not
	// be remembered, so the gateway's retry runs the writes again.
	mock.ExpectQuery(`SELECT \* FROM "payment_intents" WHERE razorpay_order_id =`).
		WillReturnRows(intentRows("order_abc123", "u1", "Pro", "created"))
	mock.ExpectExec(`INSERT INTO "user_subscriptions"`).
		WillReturnError(errors.New("connection reset"))
	expectActivation(mock, "order_abc123", "u1", "Pro")

	first := deliverEvent(router, body, signBody(body), "evt_1")
	second := deliverEvent(router, body, signBody(body), "evt_1")

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "OK", second.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookRedeliveryAfterSuccessSkipsWrites(t *testing.T) {
	config.RAZORPAY_WEBHOOK_SECRET = testWebhookSecret

	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	database.DB = db

	database.Redis = testutil.SetupStubRedis(t)
	defer func() { database.Redis = nil }()

	body := capturedEvent("order_abc123", "pay_xyz789")
	router := webhookRouter()

	// Only the first delivery touches the database; the redelivery is
	// answered from the recorded event id alone.
	expectActivation(mock, "order_abc123", "u1", "Pro")

	first := deliverEvent(router, body, signBody(body), "evt_2")
	second := deliverEvent(router, body, signBody(body), "evt_2")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "OK", second.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
