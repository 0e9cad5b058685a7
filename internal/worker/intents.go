// Package worker expires payment intents whose orders were never paid.
package worker

import (
	"log"
	"time"

	"timestamper-api/internal/domain/payments"

	"gorm.io/gorm"
)

const (
	sweepInterval = 1 * time.Hour
	intentMaxAge  = 24 * time.Hour
)

type Sweeper struct {
	DB *gorm.DB
}

func NewSweeper(db *gorm.DB) *Sweeper {
	return &Sweeper{DB: db}
}

// Start runs the sweep loop. Call in a goroutine.
func (s *Sweeper) Start() {
	ticker := time.NewTicker(sweepInterval)
	log.Println("Background payment-intent sweeper started")

	// Run once at start
	s.sweep()

	for range ticker.C {
		s.sweep()
	}
}

// sweep marks day-old unpaid intents as expired. Expired intents are no
// longer accepted by the webhook or the verify path.
func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-intentMaxAge)

	res := s.DB.Model(&payments.PaymentIntent{}).
		Where("status = ? AND created_at < ?", payments.StatusCreated, cutoff).
		Update("status", payments.StatusExpired)
	if res.Error != nil {
		log.Printf("Error expiring payment intents: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Expired %d stale payment intents", res.RowsAffected)
	}
}
