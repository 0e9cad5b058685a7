package payments

import (
	"time"
)

// Intent statuses. An intent is created when an order is requested, marked
// success once the webhook or the client verify path confirms payment, and
// expired by the background sweeper if neither happens within a day.
const (
	StatusCreated = "created"
	StatusSuccess = "success"
	StatusExpired = "expired"
)

type PaymentIntent struct {
	RazorpayOrderID   string `gorm:"column:razorpay_order_id;primaryKey"`
	UserID            string `gorm:"type:uuid;not null;index"`
	Plan              string `gorm:"not null"`
	Status            string `gorm:"not null"`
	RazorpayPaymentID *string `gorm:"column:razorpay_payment_id"`
	AmountPaise       int64   `gorm:"column:amount_paise"`
	Currency          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentIntent) TableName() string { return "payment_intents" }
