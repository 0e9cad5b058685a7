package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// signHex is hex(HMAC-SHA256(secret, message)), the encoding Razorpay uses
// for both webhook and checkout signatures.
func signHex(message []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against the
// raw request body. Comparison is constant-time.
func VerifyWebhookSignature(body []byte, signature string, secret string) bool {
	expected := signHex(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPaymentSignature checks the checkout callback signature, computed
// over "orderID|paymentID" with the API key secret.
func VerifyPaymentSignature(orderID, paymentID, signature string, secret string) bool {
	expected := signHex([]byte(orderID+"|"+paymentID), secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
